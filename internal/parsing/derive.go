// Package parsing derives structured context from free-text resumes and
// job descriptions. All derivation is deterministic: the same input text
// always produces the same (sorted) output sets.
package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// technologyLexicon lists technology terms recognized in resumes and job
// descriptions. Matching is case-insensitive on word boundaries.
var technologyLexicon = []string{
	"angular", "ansible", "aws", "azure", "c", "c#", "c++", "cassandra",
	"ci/cd", "css", "django", "docker", "elasticsearch", "express",
	"fastapi", "flask", "gin", "git", "go", "google cloud", "grafana",
	"graphql", "grpc", "html", "java", "javascript", "jenkins", "jira",
	"kafka", "kotlin", "kubernetes", "linux", "mongodb", "mysql", "next.js",
	"node.js", "numpy", "pandas", "php", "postgres", "power bi",
	"prometheus", "python", "pytorch", "rabbitmq", "react", "redis",
	"rest", "ruby", "rust", "scala", "snowflake", "spark", "spring",
	"sql", "sql server", "swift", "tableau", "tensorflow", "terraform",
	"typescript", "vue",
}

// competencyLexicon lists non-technology keywords worth surfacing from a
// job description.
var competencyLexicon = []string{
	"agile", "architecture", "collaboration", "communication", "debugging",
	"leadership", "mentoring", "microservices", "monitoring", "scrum",
	"security", "testing",
}

// DeriveJobContext computes the derived keyword and technology sets for a
// job description. Idempotent; safe to call repeatedly.
func DeriveJobContext(description, title string) types.JobContext {
	job := types.JobContext{
		Description:          description,
		Title:                title,
		RequiredTechnologies: matchLexicon(description, technologyLexicon),
	}
	if job.Title == "" {
		job.Title = guessJobTitle(description)
	}
	keywords := append(matchLexicon(description, competencyLexicon), job.RequiredTechnologies...)
	sortStrings(keywords)
	job.ExtractedKeywords = dedupe(keywords)
	return job
}

// DeriveResumeContext computes the derived skill and project sets for a
// plain-text resume.
func DeriveResumeContext(rawText string) types.ResumeContext {
	skills := matchLexicon(rawText, technologyLexicon)
	skills = append(skills, skillSectionEntries(rawText)...)
	return types.ResumeContext{
		RawText:           rawText,
		ExtractedSkills:   NormalizeSkillSet(skills),
		ExtractedProjects: extractProjects(rawText),
	}
}

// matchLexicon returns the lexicon terms present in text, lowercased and
// sorted. Terms must appear on word boundaries so "go" does not match
// "mongodb".
func matchLexicon(text string, lexicon []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range lexicon {
		if containsTerm(lower, term) {
			found = append(found, term)
		}
	}
	sortStrings(found)
	return found
}

// ContainsTerm reports whether term occurs in text, case-insensitively
// and on word boundaries.
func ContainsTerm(text, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return containsTerm(strings.ToLower(text), term)
}

// containsTerm reports whether term occurs in lower on word boundaries.
func containsTerm(lower, term string) bool {
	start := 0
	for {
		idx := strings.Index(lower[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if boundaryBefore(lower, idx) && boundaryAfter(lower, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordChar(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordChar(s[i])
}

// isWordChar treats letters, digits, '+', and '#' as word characters so
// "c++" and "c#" do not bleed into neighbors.
func isWordChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '#':
		return true
	}
	return false
}

// skillSectionEntries splits comma- or bullet-separated entries from lines
// under a "Skills" heading.
func skillSectionEntries(text string) []string {
	var entries []string
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if isSectionHeading(lower) {
			inSection = strings.Contains(lower, "skill")
			// Headings like "Skills: Python, SQL" carry entries inline.
			if inSection {
				if _, after, ok := strings.Cut(trimmed, ":"); ok {
					entries = append(entries, splitEntries(after)...)
				}
			}
			continue
		}
		if inSection && trimmed != "" {
			entries = append(entries, splitEntries(trimmed)...)
		}
	}
	return entries
}

func splitEntries(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ';' || r == '•'
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(strings.TrimLeft(f, "-* \t"))
		// Skip prose; skill entries are short.
		if f != "" && len(f) <= 30 {
			out = append(out, f)
		}
	}
	return out
}

// extractProjects parses blank-line-separated blocks under a "Projects"
// heading. The first line of a block is the title, the rest its
// description.
func extractProjects(text string) []types.Project {
	lines := strings.Split(text, "\n")
	var projects []types.Project
	inSection := false
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		title := strings.TrimSpace(strings.TrimLeft(block[0], "-*• \t"))
		desc := strings.TrimSpace(strings.Join(block[1:], "\n"))
		if title != "" {
			projects = append(projects, types.Project{
				Title:        title,
				Description:  desc,
				Technologies: matchLexicon(strings.Join(block, "\n"), technologyLexicon),
			})
		}
		block = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if isSectionHeading(lower) {
			flush()
			inSection = strings.Contains(lower, "project")
			continue
		}
		if !inSection {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		block = append(block, trimmed)
	}
	flush()
	return projects
}

// isSectionHeading reports whether a lowercased line looks like a resume
// or job-description section heading.
func isSectionHeading(lower string) bool {
	if lower == "" || len(lower) > 60 {
		return false
	}
	headings := []string{
		"skills", "technical skills", "projects", "personal projects",
		"experience", "work experience", "education", "summary",
		"certifications", "responsibilities", "requirements",
		"qualifications",
	}
	head := lower
	if before, _, ok := strings.Cut(lower, ":"); ok {
		head = strings.TrimSpace(before)
	}
	for _, h := range headings {
		if head == h {
			return true
		}
	}
	return false
}

// guessJobTitle uses the first short non-empty line of a description as
// the role title when none was provided explicitly.
func guessJobTitle(description string) string {
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) <= 80 {
			return trimmed
		}
		return ""
	}
	return ""
}

func sortStrings(s []string) {
	sort.Strings(s)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, s := range sorted {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
