// Package prompt assembles generation requests: it validates options,
// computes the resume/job technology match, and merges the fixed library
// of writing-guideline fragments for each document kind.
package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/career-assistant/internal/types"
)

//go:embed guidelines.json
var guidelineFiles embed.FS

var (
	guidelineCache map[string][]string
	guidelineOnce  sync.Once
	guidelineErr   error
)

// guidelinesFor returns the writing-guideline fragments for a kind, with
// the common fragments prepended. The library is embedded at compile time
// and parsed once.
func guidelinesFor(kind types.Kind) ([]string, error) {
	guidelineOnce.Do(func() {
		data, err := guidelineFiles.ReadFile("guidelines.json")
		if err != nil {
			guidelineErr = fmt.Errorf("failed to read guidelines file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &guidelineCache); err != nil {
			guidelineErr = fmt.Errorf("failed to parse guidelines file: %w", err)
		}
	})
	if guidelineErr != nil {
		return nil, guidelineErr
	}

	fragments, ok := guidelineCache[string(kind)]
	if !ok {
		return nil, fmt.Errorf("no guidelines defined for kind %q", kind)
	}

	out := make([]string, 0, len(guidelineCache["common"])+len(fragments))
	out = append(out, guidelineCache["common"]...)
	out = append(out, fragments...)
	return out, nil
}
