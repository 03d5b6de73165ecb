package validate

import "strings"

// emphasisMarkers are markdown artifacts the writing guidelines forbid.
// Longer markers must be stripped before their prefixes.
var emphasisMarkers = []string{"**", "__", "*", "_"}

// Normalize post-processes raw generated text: collapses runs of blank
// lines to at most one, strips markdown emphasis markers, and trims
// leading and trailing whitespace. Normalizing already-normalized text
// is a no-op.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	for _, marker := range emphasisMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, trimmed)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
