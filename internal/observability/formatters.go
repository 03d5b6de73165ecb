// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/career-assistant/internal/fetch"
	"github.com/jonathan/career-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSnapshot outputs a human-readable summary of the session contexts.
func (p *Printer) PrintSnapshot(snap *types.Snapshot) {
	if snap == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidate: %s\n", orNotSet(snap.Personal.FullName)))
	sb.WriteString(fmt.Sprintf("Job Title: %s\n", orNotSet(snap.Job.Title)))
	sb.WriteString(fmt.Sprintf("Job Text:  %d chars\n", len(snap.Job.Description)))
	sb.WriteString(fmt.Sprintf("Resume:    %d chars\n", len(snap.Resume.RawText)))
	sb.WriteString("\n")

	if len(snap.Resume.ExtractedSkills) > 0 {
		sb.WriteString("Resume Skills:\n")
		writeList(&sb, snap.Resume.ExtractedSkills, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(snap.Job.RequiredTechnologies) > 0 {
		sb.WriteString("Job Technologies:\n")
		writeList(&sb, snap.Job.RequiredTechnologies, maxItemsToShow)
	}

	p.printBox("SESSION SNAPSHOT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequest outputs the assembled generation request with its
// technology-match breakdown.
func (p *Printer) PrintRequest(req *types.GenerationRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind:    %s\n", req.Kind))
	sb.WriteString(fmt.Sprintf("Request: %s\n", req.Metadata.ID))
	if req.Metadata.Truncated {
		sb.WriteString(fmt.Sprintf("Resume truncated from %d chars\n", req.Metadata.OriginalResumeChars))
	}
	sb.WriteString("\n")

	if len(req.Options) > 0 {
		sb.WriteString("Options:\n")
		for _, key := range sortedKeys(req.Options) {
			value := req.Options[key]
			if len(value) > 35 {
				value = value[:32] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", key, value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Technology Match:\n")
	sb.WriteString(fmt.Sprintf("  Shared:      %s\n", joinOrDash(req.Match.Overlap)))
	sb.WriteString(fmt.Sprintf("  Resume only: %s\n", joinOrDash(req.Match.ResumeOnly)))
	sb.WriteString(fmt.Sprintf("  Job only:    %s", joinOrDash(req.Match.JobOnly)))

	p.printBox("GENERATION REQUEST", sb.String())
}

// PrintJobPosting outputs a fetched job posting summary.
func (p *Printer) PrintJobPosting(posting *fetch.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Board:    %s\n", posting.Board))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orNotSet(posting.Title)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orNotSet(posting.Company)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orNotSet(posting.Location)))
	sb.WriteString(fmt.Sprintf("Text:     %d chars", len(posting.Description)))

	p.printBox("FETCHED JOB POSTING", sb.String())
}

// PrintIssues outputs any validation issues found in a result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(result *types.GenerationResult) {
	if result == nil || len(result.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VALIDATION ISSUES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(result.Issues)))

	for i, issue := range result.Issues {
		message := issue.Message
		if len(message) > 45 {
			message = message[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", issue.Code, issue.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", message))
		if i < len(result.Issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ISSUES", sb.String())
}

func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	joined := strings.Join(items, ", ")
	if len(joined) > 40 {
		joined = joined[:37] + "..."
	}
	return joined
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
