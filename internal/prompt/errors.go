package prompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// InvalidContextError reports a snapshot missing resume or job text.
// Recovered locally by prompting the user; never sent to the remote
// service.
type InvalidContextError struct {
	Missing string // "resume" or "job description"
}

func (e *InvalidContextError) Error() string {
	return fmt.Sprintf("invalid context: %s is empty", e.Missing)
}

// Stage implements types.StagedError.
func (e *InvalidContextError) Stage() types.Stage { return types.StageBuild }

// InvalidOptionError reports an unknown option key or an illegal
// enumerated value, naming the offending key.
type InvalidOptionError struct {
	Kind    types.Kind
	Key     string
	Value   string
	Allowed []string
}

func (e *InvalidOptionError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid option %q=%q for kind %s (allowed: %s)",
			e.Key, e.Value, e.Kind, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("option %q is not recognized for kind %s", e.Key, e.Kind)
}

// Stage implements types.StagedError.
func (e *InvalidOptionError) Stage() types.Stage { return types.StageBuild }
