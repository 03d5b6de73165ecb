package fetch

import (
	"net/url"
	"strings"
)

// Board represents a known job board.
type Board string

const (
	// BoardLinkedIn is linkedin.com
	BoardLinkedIn Board = "linkedin"
	// BoardIndeed is indeed.com
	BoardIndeed Board = "indeed"
	// BoardGreenhouse is the Greenhouse ATS
	BoardGreenhouse Board = "greenhouse"
	// BoardLever is the Lever ATS
	BoardLever Board = "lever"
	// BoardGeneric is an unrecognized board
	BoardGeneric Board = "generic"
)

// DetectBoard identifies the job board from a URL.
func DetectBoard(urlStr string) Board {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return BoardGeneric
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "linkedin.com"):
		return BoardLinkedIn
	case strings.Contains(host, "indeed.com"):
		return BoardIndeed
	case strings.Contains(host, "greenhouse.io"):
		return BoardGreenhouse
	case strings.Contains(host, "lever.co"):
		return BoardLever
	}
	return BoardGeneric
}

// boardSelectors bundles the per-board CSS selectors used to pull the
// posting apart.
type boardSelectors struct {
	title       []string
	company     []string
	location    []string
	description []string
}

var selectorsByBoard = map[Board]boardSelectors{
	BoardLinkedIn: {
		title:       []string{"h1.top-card-layout__title", "h1"},
		company:     []string{"a.topcard__org-name-link", "span.topcard__flavor"},
		location:    []string{"span.topcard__flavor--bullet"},
		description: []string{"div.description__text", "div[class*='description']"},
	},
	BoardIndeed: {
		title:       []string{"h1[class*='jobsearch-JobInfoHeader-title']", "h1"},
		company:     []string{"div[data-company-name]", "div[class*='company']"},
		location:    []string{"div[data-testid='job-location']", "div[class*='location']"},
		description: []string{"#jobDescriptionText", "div[class*='jobDescription']"},
	},
	BoardGreenhouse: {
		title:       []string{"h1.app-title", "h1"},
		company:     []string{"span.company-name", "div[class*='company']"},
		location:    []string{"div.location", "span[class*='location']"},
		description: []string{"#content", "div[class*='content']"},
	},
	BoardLever: {
		title:       []string{"h2.posting-headline", "h1", "h2"},
		company:     []string{"div.posting-categories"},
		location:    []string{"div.posting-categories .location", "div[class*='location']"},
		description: []string{"div.content", "div[class*='content']"},
	},
	BoardGeneric: {
		title:   []string{"h1", "title"},
		company: []string{"span[class*='company']", "div[class*='company']", "a[class*='company']"},
		description: []string{
			".job-description", "#job-description", ".posting-content",
			".job-details", "[data-testid='job-description']",
			"main", "article", ".content", "#content",
		},
	},
}

// boardNoise lists elements stripped before description extraction:
// application forms, legal disclosures, share widgets.
var boardNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// selectorsFor returns the selector set for a board, falling back to the
// generic set.
func selectorsFor(board Board) boardSelectors {
	if s, ok := selectorsByBoard[board]; ok {
		return s
	}
	return selectorsByBoard[BoardGeneric]
}
