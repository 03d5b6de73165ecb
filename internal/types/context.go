// Package types provides type definitions for structured data used throughout the career-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalDetails holds the candidate's contact record for the session.
// Immutable once set; replaced wholesale by an explicit user edit.
type PersonalDetails struct {
	FullName          string   `json:"full_name" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone,omitempty"`
	Education         []string `json:"education,omitempty"`
	Location          string   `json:"location,omitempty"`
	WorkAuthorization string   `json:"work_authorization,omitempty"`
}

// Project is one portfolio entry derived from the resume text.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
}

// JobContext is the target job description plus derived keyword and
// technology sets. Derived fields are computed lazily from Description
// and are deterministic for a given description.
type JobContext struct {
	Description          string   `json:"description"`
	Title                string   `json:"title,omitempty"`
	ExtractedKeywords    []string `json:"extracted_keywords,omitempty"`
	RequiredTechnologies []string `json:"required_technologies,omitempty"`
}

// ResumeContext is the plain-text resume plus derived skill and project
// sets. A re-upload replaces the whole value; it is never mutated in place.
type ResumeContext struct {
	RawText           string    `json:"raw_text"`
	ExtractedSkills   []string  `json:"extracted_skills,omitempty"`
	ExtractedProjects []Project `json:"extracted_projects,omitempty"`
}

// Snapshot is an immutable composite of the session contexts, taken at
// request-build time and passed by value through the pipeline. Later
// stages must never re-read mutable session state.
type Snapshot struct {
	Personal PersonalDetails `json:"personal"`
	Job      JobContext      `json:"job"`
	Resume   ResumeContext   `json:"resume"`
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Personal.Education = copyStrings(s.Personal.Education)
	out.Job.ExtractedKeywords = copyStrings(s.Job.ExtractedKeywords)
	out.Job.RequiredTechnologies = copyStrings(s.Job.RequiredTechnologies)
	out.Resume.ExtractedSkills = copyStrings(s.Resume.ExtractedSkills)
	if s.Resume.ExtractedProjects != nil {
		projects := make([]Project, len(s.Resume.ExtractedProjects))
		for i, p := range s.Resume.ExtractedProjects {
			projects[i] = p
			projects[i].Technologies = copyStrings(p.Technologies)
		}
		out.Resume.ExtractedProjects = projects
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
