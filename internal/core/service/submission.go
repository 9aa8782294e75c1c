package service

import (
	"context"
	"sync"
	"time"

	"github.com/royalestate/realty-platform/internal/core/domain"
)

// SubmissionState is the lifecycle of a single create/edit form submission.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionUploading  SubmissionState = "uploading"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSucceeded  SubmissionState = "succeeded"
	SubmissionFailed     SubmissionState = "failed"
)

// defaultSuccessDelay is how long the success state is displayed before the
// machine auto-reverts to idle and triggers the cache refresh.
const defaultSuccessDelay = 1500 * time.Millisecond

// Submission drives the Idle → Uploading? → Submitting → {Succeeded, Failed}
// machine. An in-flight upload blocks submission (the submit is rejected, not
// queued); Succeeded auto-reverts to Idle after a fixed display delay and
// triggers exactly one refresh; Failed holds until retry or Reset.
type Submission struct {
	mu           sync.Mutex
	state        SubmissionState
	successDelay time.Duration
	refresh      func()
}

// NewSubmission creates an idle machine. refresh runs once per successful
// submission, after the display delay. A non-positive delay falls back to the
// default.
func NewSubmission(refresh func(), successDelay time.Duration) *Submission {
	if successDelay <= 0 {
		successDelay = defaultSuccessDelay
	}
	return &Submission{state: SubmissionIdle, successDelay: successDelay, refresh: refresh}
}

// State returns the current machine state.
func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginUpload marks an image upload in flight. It reports false when a
// submission is already running.
func (s *Submission) BeginUpload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SubmissionSubmitting || s.state == SubmissionSucceeded {
		return false
	}
	s.state = SubmissionUploading
	return true
}

// EndUpload returns the machine to idle once the upload finished (successfully
// or not — a failed upload leaves the form intact for retry).
func (s *Submission) EndUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SubmissionUploading {
		s.state = SubmissionIdle
	}
}

// Submit runs do under the machine: rejected while uploading, rejected while
// another submission is in flight, Failed on error, Succeeded otherwise.
func (s *Submission) Submit(ctx context.Context, do func(ctx context.Context) error) error {
	s.mu.Lock()
	switch s.state {
	case SubmissionUploading:
		s.mu.Unlock()
		return domain.ErrUploadInProgress
	case SubmissionSubmitting, SubmissionSucceeded:
		s.mu.Unlock()
		return domain.ErrSubmissionBusy
	}
	s.state = SubmissionSubmitting
	s.mu.Unlock()

	err := do(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = SubmissionFailed
		s.mu.Unlock()
		return err
	}
	s.state = SubmissionSucceeded
	s.mu.Unlock()

	time.AfterFunc(s.successDelay, func() {
		s.mu.Lock()
		if s.state == SubmissionSucceeded {
			s.state = SubmissionIdle
		}
		s.mu.Unlock()
		if s.refresh != nil {
			s.refresh()
		}
	})
	return nil
}

// Reset clears a Failed submission back to idle (the user cancelled).
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SubmissionFailed {
		s.state = SubmissionIdle
	}
}
