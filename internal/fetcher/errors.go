package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseInvalidRequest        FetchErrorCause = "invalid request"
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseCanceled              FetchErrorCause = "canceled"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseContentTypeInvalid    FetchErrorCause = "unexpected content type"
	ErrCauseRedirectLimitExceeded FetchErrorCause = "reached redirect limit"
	ErrCauseRequestPageForbidden  FetchErrorCause = "forbidden"
	ErrCauseRequestNotFound       FetchErrorCause = "not found"
	ErrCauseRequest4xx            FetchErrorCause = "4xx"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
)

// FetchError is never retried by this package.
// Retryable only tells the operator whether a re-run may succeed.
type FetchError struct {
	Message    string
	Retryable  bool
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fetcher error: %s", e.Cause)
	}
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout,
		ErrCauseCanceled,
		ErrCauseNetworkFailure,
		ErrCauseReadResponseBodyError,
		ErrCauseRedirectLimitExceeded,
		ErrCauseRequestPageForbidden,
		ErrCauseRequestNotFound,
		ErrCauseRequest4xx,
		ErrCauseRequestTooMany,
		ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseContentTypeInvalid:
		return metadata.CauseContentInvalid
	case ErrCauseInvalidRequest:
		return metadata.CauseInvalidInput
	default:
		return metadata.CauseUnknown
	}
}
