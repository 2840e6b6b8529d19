package pipeline

import (
	"fmt"

	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

type Stage string

const (
	StageExtract   Stage = "extract"
	StageCache     Stage = "cache"
	StageAcquire   Stage = "acquire"
	StagePersist   Stage = "persist"
	StageSummarize Stage = "summarize"
	StageHighlight Stage = "highlight"
	StageCanceled  Stage = "canceled"
)

// RunError names the stage a run stopped at and wraps the component error.
type RunError struct {
	Stage Stage
	ID    videoid.ID
	Err   error
}

func (e *RunError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("pipeline: %s %s: %v", e.Stage, e.ID, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func (e *RunError) Severity() failure.Severity {
	if failure.IsRecoverable(e.Err) {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
