package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// UploadPhase is the state of one document pipeline.
type UploadPhase int

const (
	UploadIdle UploadPhase = iota
	UploadFileSelected
	UploadSubmitting
	UploadSucceeded
	UploadFailed
)

func (p UploadPhase) String() string {
	switch p {
	case UploadIdle:
		return "idle"
	case UploadFileSelected:
		return "file_selected"
	case UploadSubmitting:
		return "submitting"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a pipeline run.
func (p UploadPhase) Terminal() bool {
	return p == UploadSucceeded || p == UploadFailed
}

const (
	// SubmitPreconditionMessage is shown when submit is attempted without a
	// selected file or without a signed-in user.
	SubmitPreconditionMessage = "Please select a file and ensure you are signed in."

	// SummarizeFallbackMessage is shown when the backend gives no reason.
	SummarizeFallbackMessage = "Failed to generate summary. Please try again."
)

var (
	// ErrSubmitInProgress is returned when Submit is called while a
	// submission is already in flight. The call is ignored.
	ErrSubmitInProgress = errors.New("a submission is already in progress")

	// ErrSuperseded is returned when a response arrives for a pipeline run
	// that was reset or replaced in the meantime. The response was dropped.
	ErrSuperseded = errors.New("response superseded by a newer request")
)

// UploadState is a copy of the orchestrator state for display.
type UploadState struct {
	Phase      UploadPhase
	File       *entity.UploadFile
	Summary    string
	Err        error
	Descriptor *entity.SessionDescriptor
}

// ErrorMessage returns the user-facing error text, empty when there is none.
func (s UploadState) ErrorMessage() string {
	return domain.UserMessage(s.Err, SummarizeFallbackMessage)
}

// Refresher is refreshed after every successful submission.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// UploadOrchestrator drives file selection, submission and the resulting
// summary and session descriptor.
type UploadOrchestrator struct {
	gate       *IdentityGate
	summarizer domain.Summarizer
	refresher  Refresher
	logger     *slog.Logger
	now        func() time.Time

	mu    sync.Mutex
	state UploadState
	token uint64 // bumped by every selection, reset and submission
}

// NewUploadOrchestrator creates an idle orchestrator. refresher may be nil.
// Signing out resets the orchestrator.
func NewUploadOrchestrator(gate *IdentityGate, summarizer domain.Summarizer, refresher Refresher, logger *slog.Logger) *UploadOrchestrator {
	u := &UploadOrchestrator{
		gate:       gate,
		summarizer: summarizer,
		refresher:  refresher,
		logger:     logger,
		now:        time.Now,
	}
	gate.Subscribe(func(st IdentityState) {
		if st.Phase != IdentityPresent {
			u.Reset()
		}
	})
	return u
}

// SelectFile starts a new pipeline run with file, discarding any previous
// summary, error and descriptor. Selecting while a submission is in flight
// supersedes it: its response will be dropped.
func (u *UploadOrchestrator) SelectFile(file entity.UploadFile) error {
	if file.Name == "" || file.Open == nil {
		return domain.NewPreconditionError("no file selected")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.token++
	f := file
	u.state = UploadState{Phase: UploadFileSelected, File: &f}
	return nil
}

// Reset returns to idle ("upload another file").
func (u *UploadOrchestrator) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.token++
	u.state = UploadState{Phase: UploadIdle}
}

// Submit uploads the selected file for the signed-in user. It blocks until
// the backend answers. A failed run keeps its file so Submit can retry it.
func (u *UploadOrchestrator) Submit(ctx context.Context) error {
	u.mu.Lock()
	if u.state.Phase == UploadSubmitting {
		u.mu.Unlock()
		u.logger.Debug("submit ignored, submission in flight")
		return ErrSubmitInProgress
	}

	user, userErr := u.gate.RequireUser()
	retryable := u.state.Phase == UploadFileSelected || u.state.Phase == UploadFailed
	if userErr != nil || !retryable || u.state.File == nil {
		u.mu.Unlock()
		return domain.NewPreconditionError(SubmitPreconditionMessage)
	}

	u.token++
	token := u.token
	file := *u.state.File
	u.state = UploadState{Phase: UploadSubmitting, File: &file}
	u.mu.Unlock()

	req := &domain.SummarizeRequest{
		UserID: user.ID,
		Time:   domain.FormatSubmissionTime(u.now()),
		File:   file,
	}

	logger := u.logger.With("file", file.Name, "user_id", user.ID)
	logger.Info("submitting document")

	res, err := u.summarizer.Summarize(ctx, req)
	if err == nil && (res == nil || res.SessionID == "") {
		err = domain.NewTransportError(SummarizeFallbackMessage, errors.New("response carried no session id"))
	}

	u.mu.Lock()
	if token != u.token {
		u.mu.Unlock()
		logger.Info("dropping stale summarize response")
		return ErrSuperseded
	}

	if err != nil {
		u.state = UploadState{Phase: UploadFailed, File: &file, Err: err}
		u.mu.Unlock()
		logger.Warn("summarize failed", "error", err)
		return err
	}

	u.state = UploadState{
		Phase:   UploadSucceeded,
		File:    &file,
		Summary: res.Summary,
		Descriptor: &entity.SessionDescriptor{
			SessionID: res.SessionID,
			Title:     file.Name,
		},
	}
	u.mu.Unlock()

	logger.Info("document summarized", "session_id", res.SessionID)

	if u.refresher != nil {
		if rerr := u.refresher.Refresh(ctx); rerr != nil {
			// The registry keeps its own error state.
			logger.Warn("registry refresh after upload failed", "error", rerr)
		}
	}
	return nil
}

// State returns a copy of the current state.
func (u *UploadOrchestrator) State() UploadState {
	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.state
	if s.File != nil {
		f := *s.File
		s.File = &f
	}
	if s.Descriptor != nil {
		d := *s.Descriptor
		s.Descriptor = &d
	}
	return s
}
