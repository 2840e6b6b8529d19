package summarize

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type CompletionErrorCause string

const (
	ErrCauseMissingCredential CompletionErrorCause = "missing api key"
	ErrCauseRequestFailed     CompletionErrorCause = "request failed"
	ErrCauseEmptyCompletion   CompletionErrorCause = "empty completion"
)

type CompletionError struct {
	Message    string
	Retryable  bool
	Cause      CompletionErrorCause
	Task       string
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion error: %s: %s: %v", e.Task, e.Cause, e.Err)
	}
	return fmt.Sprintf("completion error: %s: %s", e.Task, e.Cause)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

func (e *CompletionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCompletionErrorToMetadataCause maps completion-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCompletionErrorToMetadataCause(err *CompletionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingCredential:
		return metadata.CauseInvalidInput
	case ErrCauseRequestFailed, ErrCauseEmptyCompletion:
		return metadata.CauseCompletionFailure
	default:
		return metadata.CauseUnknown
	}
}
