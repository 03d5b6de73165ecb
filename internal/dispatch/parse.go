package dispatch

import "strings"

// defaultSubject is used when no subject can be recovered from the
// generated text.
const defaultSubject = "Job Application"

// ParseMessage splits generated email text into a subject and body. A
// "Subject:" line anywhere in the text wins; otherwise a short first
// line without a colon is promoted to the subject; otherwise the whole
// text becomes the body under a default subject.
func ParseMessage(content string) (subject, body string) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if len(line) >= 8 && strings.EqualFold(line[:8], "subject:") {
			subject = strings.TrimSpace(line[8:])
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return subject, body
		}
	}

	if len(lines) > 0 {
		first := strings.TrimSpace(lines[0])
		if first != "" && len(first) < 100 && !strings.Contains(first, ":") {
			return first, strings.TrimSpace(strings.Join(lines[1:], "\n"))
		}
	}

	return defaultSubject, strings.TrimSpace(content)
}
