package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JobPosting is a job posting reduced to the fields the session context
// needs. Description is plain text suitable for keyword derivation.
type JobPosting struct {
	URL         string
	Board       Board
	Title       string
	Company     string
	Location    string
	Description string
}

// JobPosting fetches a posting URL and extracts its fields using the
// selector set for the detected board.
func (o *Options) JobPosting(ctx context.Context, urlStr string) (*JobPosting, error) {
	result, err := URL(ctx, urlStr, o)
	if err != nil {
		return nil, err
	}
	return ParseJobPosting(urlStr, result.HTML)
}

// FetchJobPosting fetches and parses a posting with default options.
func FetchJobPosting(ctx context.Context, urlStr string) (*JobPosting, error) {
	return DefaultOptions().JobPosting(ctx, urlStr)
}

// ParseJobPosting extracts posting fields from already-fetched HTML.
func ParseJobPosting(urlStr, html string) (*JobPosting, error) {
	board := DetectBoard(urlStr)
	selectors := selectorsFor(board)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	posting := &JobPosting{
		URL:      urlStr,
		Board:    board,
		Title:    firstText(doc, selectors.title),
		Company:  firstText(doc, selectors.company),
		Location: firstText(doc, selectors.location),
	}

	// Lever stacks company and location in one categories block.
	if board == BoardLever && posting.Company != "" {
		parts := strings.Fields(posting.Company)
		if posting.Location == "" && len(parts) > 1 {
			posting.Company = parts[0]
			posting.Location = strings.Join(parts[1:], " ")
		}
	}

	description, err := ExtractMainText(html, selectors.description, boardNoise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract description", Cause: err}
	}
	posting.Description = description

	if posting.Description == "" {
		return nil, &Error{URL: urlStr, Message: "no job description content found"}
	}

	return posting, nil
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			if text := strings.TrimSpace(selection.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}
