// Package validate post-processes and structurally checks generated
// documents. Checks are pure functions over the text and the request
// snapshot; findings are soft and never discard a result.
package validate

import (
	"sort"

	"github.com/jonathan/career-assistant/internal/types"
)

// Validate normalizes raw generated text and runs the structural checks
// for its document kind. The result is always returned; non-fatal
// findings populate Issues, sorted by severity then alphabetically by
// code. Validating the same input twice yields identical output.
func Validate(req *types.GenerationRequest, raw string) *types.GenerationResult {
	normalized := Normalize(raw)

	var issues []types.Issue
	switch req.Kind {
	case types.KindEmail:
		issues = checkEmail(normalized, req.Snapshot.Personal.FullName)
	case types.KindCoverLetter:
		issues = checkCoverLetter(normalized, req.Snapshot.Job.Title)
	case types.KindResumeUpdate:
		issues = checkResumeUpdate(normalized, req.Snapshot.Resume.ExtractedSkills,
			req.Options[types.OptionAdditionalContext])
	case types.KindQA, types.KindAnalysis:
		// Free-form answers have no structural contract.
	}

	sortIssues(issues)
	return &types.GenerationResult{
		Kind:           req.Kind,
		RawText:        raw,
		NormalizedText: normalized,
		Issues:         issues,
	}
}

// severityRank fixes the sort order: errors before warnings.
func severityRank(s types.Severity) int {
	if s == types.SeverityError {
		return 0
	}
	return 1
}

func sortIssues(issues []types.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		ri, rj := severityRank(issues[i].Severity), severityRank(issues[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if issues[i].Code != issues[j].Code {
			return issues[i].Code < issues[j].Code
		}
		return issues[i].Message < issues[j].Message
	})
}
