package cache

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseNotFound     CacheErrorCause = "artifact not found"
	ErrCauseReadFailure  CacheErrorCause = "read failed"
	ErrCauseWriteFailure CacheErrorCause = "write failed"
	ErrCauseDiskFull     CacheErrorCause = "disk is full"
	ErrCausePathError    CacheErrorCause = "path error"
	ErrCauseInvalidKind  CacheErrorCause = "unknown artifact kind"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Path      string
}

func (e *CacheError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Path)
	}
	return fmt.Sprintf("cache error: %s: %s: %s", e.Cause, e.Path, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotFound,
		ErrCauseReadFailure,
		ErrCauseWriteFailure,
		ErrCauseDiskFull,
		ErrCausePathError:
		return metadata.CauseStorageFailure
	case ErrCauseInvalidKind:
		return metadata.CauseInvalidInput
	default:
		return metadata.CauseUnknown
	}
}
