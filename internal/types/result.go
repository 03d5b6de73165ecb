package types

// Severity grades a validation issue. Errors sort before warnings.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a non-fatal structural defect detected in generated text.
// Issues are surfaced for human review, never auto-corrected.
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// GenerationResult is the validated, post-processed output of one
// generation request. Produced once per request; immutable.
type GenerationResult struct {
	Kind           Kind    `json:"kind"`
	RawText        string  `json:"raw_text"`
	NormalizedText string  `json:"normalized_text"`
	Issues         []Issue `json:"validation_issues"`
}

// Valid reports whether the result is eligible for direct display or send
// without a user override.
func (r *GenerationResult) Valid() bool {
	return len(r.Issues) == 0
}
