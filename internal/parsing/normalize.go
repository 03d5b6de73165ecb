package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names.
// Canonical forms are lowercase because derived sets compare and sort
// case-insensitively.
var skillNormalizations = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"nodejs":     "node.js",
	"node":       "node.js",
	"postgresql": "postgres",
	"ms sql":     "sql server",
	"gcp":        "google cloud",
	"aws cloud":  "aws",
}

// NormalizeSkillName lowercases, trims, and canonicalizes a skill name.
// Returns "" for names that reduce to nothing.
func NormalizeSkillName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Trim(normalized, ".,;:")
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillNormalizations[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkillSet normalizes, deduplicates, and returns the set in
// insertion-independent (sorted) order.
func NormalizeSkillSet(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		normalized := NormalizeSkillName(n)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sortStrings(out)
	return out
}
