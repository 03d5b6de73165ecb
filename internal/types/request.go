package types

import "fmt"

// Kind identifies the document type a generation request produces.
type Kind string

// Document kinds supported by the pipeline.
const (
	KindEmail        Kind = "email"
	KindResumeUpdate Kind = "resume_update"
	KindCoverLetter  Kind = "cover_letter"
	KindQA           Kind = "qa"
	KindAnalysis     Kind = "analysis"
)

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEmail, KindResumeUpdate, KindCoverLetter, KindQA, KindAnalysis:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Option keys recognized per document kind.
const (
	OptionPurpose           = "purpose"
	OptionTone              = "tone"
	OptionFocus             = "focus"
	OptionAnalysis          = "analysis"
	OptionQuestion          = "question"
	OptionHiringManager     = "hiring_manager"
	OptionAdditionalContext = "additional_context"
	OptionWhyInterested     = "why_interested"
)

// TechnologyMatch is the deterministic overlap between resume skills and
// job-required technologies. All slices are lowercased, trimmed, and
// sorted lexicographically.
type TechnologyMatch struct {
	Overlap    []string `json:"overlap"`
	ResumeOnly []string `json:"resume_only"`
	JobOnly    []string `json:"job_only"`
}

// RequestMetadata carries bookkeeping flags about how the request was
// assembled, notably whether resume text was truncated to fit the cap.
type RequestMetadata struct {
	ID                  string `json:"id"`
	Truncated           bool   `json:"truncated"`
	OriginalResumeChars int    `json:"original_resume_chars,omitempty"`
}

// GenerationRequest is one fully specified, immutable instruction payload
// for a single document-generation call. Constructed fresh per call and
// never mutated after construction.
type GenerationRequest struct {
	Kind     Kind              `json:"kind"`
	Options  map[string]string `json:"options,omitempty"`
	Snapshot Snapshot          `json:"snapshot"`
	Match    TechnologyMatch   `json:"match"`

	// The assembled payload handed to the text-completion boundary.
	SystemInstructions string `json:"system_instructions"`
	UserPayload        string `json:"user_payload"`

	Metadata RequestMetadata `json:"metadata"`
}
