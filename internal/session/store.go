// Package session holds the per-session context store: resume text, job
// description, and personal details, with lazily derived skill and keyword
// sets. Single writer (explicit user edits), read-many via atomic
// snapshots.
package session

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-assistant/internal/parsing"
	"github.com/jonathan/career-assistant/internal/types"
)

// Store is the session context store. The zero value is usable.
//
// Setters replace their field atomically and invalidate the derived
// caches; Snapshot recomputes stale derivations and returns a consistent
// immutable composite. A snapshot never observes a torn mix of
// before/after an in-flight set.
type Store struct {
	mu sync.Mutex

	personal   types.PersonalDetails
	jobText    string
	jobTitle   string
	resumeText string

	// Derived caches, nil when stale.
	jobCache    *types.JobContext
	resumeCache *types.ResumeContext
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{}
}

// SetPersonalDetails replaces the personal-details record.
func (s *Store) SetPersonalDetails(d types.PersonalDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personal = d
}

// SetJobDescription replaces the job description and invalidates the
// derived keyword and technology sets.
func (s *Store) SetJobDescription(text string) {
	s.SetJob(text, "")
}

// SetJob replaces the job description with an explicit role title, as
// produced by the job-posting fetcher.
func (s *Store) SetJob(text, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobText = text
	s.jobTitle = title
	s.jobCache = nil
}

// SetResume replaces the resume text and invalidates the derived skill and
// project sets. The previous ResumeContext is discarded wholesale.
func (s *Store) SetResume(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeText = text
	s.resumeCache = nil
}

// Snapshot returns an immutable composite of the three contexts. Derived
// sets are recomputed only when the underlying text changed since the last
// snapshot; when both the job and resume caches are stale they are
// rederived concurrently.
func (s *Store) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.jobCache == nil || s.resumeCache == nil {
		var g errgroup.Group
		var derivedJob types.JobContext
		var derivedResume types.ResumeContext

		jobStale, resumeStale := s.jobCache == nil, s.resumeCache == nil
		if jobStale {
			jobText, jobTitle := s.jobText, s.jobTitle
			g.Go(func() error {
				derivedJob = parsing.DeriveJobContext(jobText, jobTitle)
				return nil
			})
		}
		if resumeStale {
			resumeText := s.resumeText
			g.Go(func() error {
				derivedResume = parsing.DeriveResumeContext(resumeText)
				return nil
			})
		}
		_ = g.Wait() // derivations cannot fail

		if jobStale {
			s.jobCache = &derivedJob
		}
		if resumeStale {
			s.resumeCache = &derivedResume
		}
	}

	return types.Snapshot{
		Personal: s.personal,
		Job:      *s.jobCache,
		Resume:   *s.resumeCache,
	}.Clone()
}
