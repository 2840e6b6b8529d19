package transcript

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type AcquireErrorCause string

const (
	ErrCauseFetchFailed AcquireErrorCause = "fetch failed"
	ErrCauseParseFailed AcquireErrorCause = "parse failed"
)

type AcquireError struct {
	Message   string
	Retryable bool
	Cause     AcquireErrorCause
	URL       string
	Err       error
}

func (e *AcquireError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcript error: %s: %s: %v", e.Cause, e.Message, e.Err)
	}
	return fmt.Sprintf("transcript error: %s: %s", e.Cause, e.Message)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

func (e *AcquireError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapAcquireErrorToMetadataCause maps transcript-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapAcquireErrorToMetadataCause(err *AcquireError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseFetchFailed:
		return metadata.CauseNetworkFailure
	case ErrCauseParseFailed:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
