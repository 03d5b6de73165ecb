package prompt

import (
	"sort"

	"github.com/jonathan/career-assistant/internal/types"
)

// Enumerated option values.
var (
	purposeValues = []string{"job_application", "follow_up", "networking", "thank_you"}
	toneValues    = []string{"professional", "confident", "friendly", "formal"}
	focusValues   = []string{"entire_resume", "skills_section", "summary", "projects"}
	analysisTypes = []string{"job_match", "skill_gap", "project_relevance", "career_summary"}
)

// optionSpec describes one option key legal for a kind. Enumerated
// options carry their allowed values; free-text options accept anything
// non-empty.
type optionSpec struct {
	required bool
	allowed  []string // nil for free text
}

// kindOptions maps each document kind to its legal option keys.
var kindOptions = map[types.Kind]map[string]optionSpec{
	types.KindEmail: {
		types.OptionPurpose:           {required: true, allowed: purposeValues},
		types.OptionTone:              {required: true, allowed: toneValues},
		types.OptionHiringManager:     {},
		types.OptionAdditionalContext: {},
	},
	types.KindResumeUpdate: {
		types.OptionFocus:             {required: true, allowed: focusValues},
		types.OptionAdditionalContext: {},
	},
	types.KindCoverLetter: {
		types.OptionTone:          {allowed: toneValues},
		types.OptionHiringManager: {},
		types.OptionWhyInterested: {},
	},
	types.KindQA: {
		types.OptionQuestion: {required: true},
	},
	types.KindAnalysis: {
		types.OptionAnalysis: {required: true, allowed: analysisTypes},
	},
}

// validateOptions checks opts against the enumerated set legal for kind.
func validateOptions(kind types.Kind, opts map[string]string) error {
	specs := kindOptions[kind]

	// Deterministic error attribution: check keys in sorted order.
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		spec, ok := specs[key]
		if !ok {
			return &InvalidOptionError{Kind: kind, Key: key}
		}
		if spec.allowed == nil {
			continue
		}
		if !contains(spec.allowed, opts[key]) {
			return &InvalidOptionError{Kind: kind, Key: key, Value: opts[key], Allowed: spec.allowed}
		}
	}

	requiredKeys := make([]string, 0, len(specs))
	for key, spec := range specs {
		if spec.required {
			requiredKeys = append(requiredKeys, key)
		}
	}
	sort.Strings(requiredKeys)
	for _, key := range requiredKeys {
		if opts[key] == "" {
			return &InvalidOptionError{Kind: kind, Key: key, Value: "", Allowed: specs[key].allowed}
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
