package validate

import (
	"fmt"

	"github.com/jonathan/career-assistant/internal/parsing"
	"github.com/jonathan/career-assistant/internal/types"
)

// checkResumeUpdate verifies that a rewritten resume retains every skill
// the input resume carried. A skill may legitimately disappear only when
// the request's free-text instructions asked for its removal.
func checkResumeUpdate(text string, skills []string, instructions string) []types.Issue {
	var issues []types.Issue
	for _, skill := range skills {
		if parsing.ContainsTerm(text, skill) {
			continue
		}
		if parsing.ContainsTerm(instructions, skill) {
			// Removal was requested; the omission is intentional.
			continue
		}
		issues = append(issues, types.Issue{
			Code:     "dropped_skill",
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("updated resume no longer mentions %q", skill),
		})
	}
	return issues
}
