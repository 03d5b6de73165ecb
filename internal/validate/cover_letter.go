package validate

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// checkCoverLetter verifies that the letter actually references the role
// it was written for. A letter that never names the job title reads as a
// generic template and is flagged for review.
func checkCoverLetter(text, jobTitle string) []types.Issue {
	title := strings.TrimSpace(jobTitle)
	if title == "" {
		return nil
	}

	if !strings.Contains(strings.ToLower(text), strings.ToLower(title)) {
		return []types.Issue{{
			Code:     "missing_job_title",
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("cover letter never mentions the job title %q", title),
		}}
	}
	return nil
}
