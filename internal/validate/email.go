package validate

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// greetingPrefixes are the openings accepted as a detectable greeting
// line, matched case-insensitively against the first non-empty lines.
var greetingPrefixes = []string{
	"dear ",
	"hello ",
	"hello,",
	"hi ",
	"hi,",
	"greetings",
	"to whom it may concern",
}

// checkEmail verifies the structural shape of a generated email: a
// greeting near the top and a closing signature line containing the
// candidate's full name.
func checkEmail(text, fullName string) []types.Issue {
	var issues []types.Issue

	if !hasGreeting(text) {
		issues = append(issues, types.Issue{
			Code:     "missing_greeting",
			Severity: types.SeverityWarning,
			Message:  "email does not open with a detectable greeting line",
		})
	}

	if fullName != "" && !containsLineWith(text, fullName) {
		issues = append(issues, types.Issue{
			Code:     "missing_signature",
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("email does not contain a signature line with %q", fullName),
		})
	}

	return issues
}

// hasGreeting scans the first few non-empty lines for a greeting. The
// email may lead with a subject line, so the greeting need not be first.
func hasGreeting(text string) bool {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, prefix := range greetingPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return true
			}
		}
		seen++
		if seen >= 3 {
			return false
		}
	}
	return false
}

// containsLineWith reports whether any line of text contains the needle,
// case-insensitively.
func containsLineWith(text, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			return true
		}
	}
	return false
}
