package videoid

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type ExtractErrorCause string

const (
	ErrCauseInvalidURL ExtractErrorCause = "no video identifier in url"
)

type ExtractError struct {
	Message   string
	Retryable bool
	Cause     ExtractErrorCause
	Input     string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("videoid error: %s: %q", e.Cause, e.Input)
}

func (e *ExtractError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapToMetadataCause maps extraction errors to the canonical metadata table.
// Observational only.
func MapToMetadataCause(err *ExtractError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidURL:
		return metadata.CauseInvalidInput
	default:
		return metadata.CauseUnknown
	}
}
