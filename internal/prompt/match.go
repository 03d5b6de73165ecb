package prompt

import (
	"sort"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// MatchTechnologies computes the case-insensitive, trimmed set
// intersection of resume skills and job-required technologies, plus the
// resume-only and job-only remainders. All output is lowercased and
// sorted lexicographically so the match is order-stable and reproducible.
func MatchTechnologies(resumeSkills, jobTechnologies []string) types.TechnologyMatch {
	resumeSet := normalizeSet(resumeSkills)
	jobSet := normalizeSet(jobTechnologies)

	var match types.TechnologyMatch
	for skill := range resumeSet {
		if jobSet[skill] {
			match.Overlap = append(match.Overlap, skill)
		} else {
			match.ResumeOnly = append(match.ResumeOnly, skill)
		}
	}
	for tech := range jobSet {
		if !resumeSet[tech] {
			match.JobOnly = append(match.JobOnly, tech)
		}
	}

	sort.Strings(match.Overlap)
	sort.Strings(match.ResumeOnly)
	sort.Strings(match.JobOnly)
	return match
}

func normalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
