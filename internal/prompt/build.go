package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/career-assistant/internal/types"
)

// DefaultResumeCharCap bounds the resume text embedded in a request.
const DefaultResumeCharCap = 20000

// Builder assembles generation requests from session snapshots.
type Builder struct {
	// ResumeCharCap caps the resume text length; longer resumes are
	// truncated and the request metadata flags the truncation.
	ResumeCharCap int
}

// NewBuilder returns a Builder with the default resume cap.
func NewBuilder() *Builder {
	return &Builder{ResumeCharCap: DefaultResumeCharCap}
}

// Build validates the snapshot and options for kind and assembles an
// immutable GenerationRequest. The request embeds the technology match
// and the guideline fragments for the kind; it is deterministic apart
// from the generated request ID.
func (b *Builder) Build(kind types.Kind, opts map[string]string, snap types.Snapshot) (*types.GenerationRequest, error) {
	if strings.TrimSpace(snap.Resume.RawText) == "" {
		return nil, &InvalidContextError{Missing: "resume"}
	}
	if strings.TrimSpace(snap.Job.Description) == "" {
		return nil, &InvalidContextError{Missing: "job description"}
	}
	if err := validateOptions(kind, opts); err != nil {
		return nil, err
	}

	guidelines, err := guidelinesFor(kind)
	if err != nil {
		return nil, err
	}

	match := MatchTechnologies(snap.Resume.ExtractedSkills, snap.Job.RequiredTechnologies)

	snap = snap.Clone()
	meta := types.RequestMetadata{ID: uuid.NewString()}
	limit := b.ResumeCharCap
	if limit <= 0 {
		limit = DefaultResumeCharCap
	}
	if len(snap.Resume.RawText) > limit {
		// Back off to a rune boundary so the cut never leaves a torn
		// UTF-8 sequence in the payload.
		cut := limit
		for cut > 0 && !utf8.RuneStart(snap.Resume.RawText[cut]) {
			cut--
		}
		meta.Truncated = true
		meta.OriginalResumeChars = len(snap.Resume.RawText)
		snap.Resume.RawText = snap.Resume.RawText[:cut]
	}

	optsCopy := make(map[string]string, len(opts))
	for k, v := range opts {
		optsCopy[k] = v
	}

	req := &types.GenerationRequest{
		Kind:     kind,
		Options:  optsCopy,
		Snapshot: snap,
		Match:    match,
		Metadata: meta,
	}
	req.SystemInstructions = renderSystemInstructions(snap.Personal, guidelines)
	req.UserPayload = renderUserPayload(req)
	return req, nil
}

// renderSystemInstructions merges the guideline fragments with the
// candidate's signature block and personal details.
func renderSystemInstructions(personal types.PersonalDetails, guidelines []string) string {
	var sb strings.Builder
	sb.WriteString("WRITING GUIDELINES:\n")
	for i, g := range guidelines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, g)
	}

	if personal.FullName != "" {
		sb.WriteString("\nSIGNATURE BLOCK (use exactly when a signature is required):\n")
		sb.WriteString("Best regards,\n")
		sb.WriteString(personal.FullName + "\n")
		if personal.Email != "" {
			sb.WriteString(personal.Email + "\n")
		}
		if personal.Phone != "" {
			sb.WriteString(personal.Phone + "\n")
		}
	}

	sb.WriteString("\nPERSONAL DETAILS:\n")
	fmt.Fprintf(&sb, "Full Name: %s\n", personal.FullName)
	fmt.Fprintf(&sb, "Email: %s\n", personal.Email)
	if personal.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", personal.Phone)
	}
	for _, edu := range personal.Education {
		fmt.Fprintf(&sb, "Education: %s\n", edu)
	}
	if personal.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", personal.Location)
	}
	if personal.WorkAuthorization != "" {
		fmt.Fprintf(&sb, "Work Authorization: %s\n", personal.WorkAuthorization)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderUserPayload assembles the task instruction, the context
// documents, and the explicit technology-match fields.
func renderUserPayload(req *types.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(taskInstruction(req.Kind, req.Options))
	sb.WriteString("\n\nTARGET JOB DESCRIPTION")
	if req.Snapshot.Job.Title != "" {
		fmt.Fprintf(&sb, " (%s)", req.Snapshot.Job.Title)
	}
	sb.WriteString(":\n")
	sb.WriteString(req.Snapshot.Job.Description)

	sb.WriteString("\n\nRESUME:\n")
	sb.WriteString(req.Snapshot.Resume.RawText)

	sb.WriteString("\n\nTECHNOLOGY MATCH (computed, authoritative):\n")
	fmt.Fprintf(&sb, "Shared by resume and job: %s\n", joinOrNone(req.Match.Overlap))
	fmt.Fprintf(&sb, "Resume only: %s\n", joinOrNone(req.Match.ResumeOnly))
	fmt.Fprintf(&sb, "Job only: %s\n", joinOrNone(req.Match.JobOnly))

	if len(req.Snapshot.Resume.ExtractedProjects) > 0 {
		sb.WriteString("\nPROJECT PORTFOLIO:\n")
		for _, p := range req.Snapshot.Resume.ExtractedProjects {
			fmt.Fprintf(&sb, "- %s: %s\n", p.Title, p.Description)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// taskInstruction renders the per-kind task header, folding in the
// user-chosen options.
func taskInstruction(kind types.Kind, opts map[string]string) string {
	switch kind {
	case types.KindEmail:
		salutation := "Dear Hiring Manager,"
		if name := opts[types.OptionHiringManager]; name != "" {
			salutation = "Dear " + name + ","
		}
		task := fmt.Sprintf("TASK: Write a %s job application email for purpose %q.\nSALUTATION: %s",
			opts[types.OptionTone], opts[types.OptionPurpose], salutation)
		if extra := opts[types.OptionAdditionalContext]; extra != "" {
			task += "\nADDITIONAL CONTEXT: " + extra
		}
		return task
	case types.KindResumeUpdate:
		task := fmt.Sprintf("TASK: Update the resume, focusing on %q, to match the target job description.",
			opts[types.OptionFocus])
		if extra := opts[types.OptionAdditionalContext]; extra != "" {
			task += "\nADDITIONAL INSTRUCTIONS: " + extra
		}
		return task
	case types.KindCoverLetter:
		task := "TASK: Write a compelling cover letter for the target job description."
		if name := opts[types.OptionHiringManager]; name != "" {
			task += "\nHIRING MANAGER: " + name
		}
		if why := opts[types.OptionWhyInterested]; why != "" {
			task += "\nWHY INTERESTED: " + why
		}
		return task
	case types.KindQA:
		return "USER QUESTION: " + opts[types.OptionQuestion] +
			"\nAnswer based on the resume, projects, and target job description."
	case types.KindAnalysis:
		return fmt.Sprintf("TASK: Produce a %q analysis of the resume against the target job description.",
			opts[types.OptionAnalysis])
	}
	return "TASK: " + string(kind)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
