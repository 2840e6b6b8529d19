package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/cache"
	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/render"
	"github.com/rohmanhakim/yt-summarizer/internal/summarize"
	"github.com/rohmanhakim/yt-summarizer/internal/transcript"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

/*
 Orchestrator is the only component that decides continue or abort.

 - Components classify failures; none of them retries.
 - The first failure ends the run. Artifacts written before it stay on
   disk and make a later run resumable.
 - The transcript file is the only cache-hit signal.
 - Steps run strictly in sequence. Nothing here is safe for two runs
   against the same output directory at once.

 Metadata emission is observational only and MUST NOT influence
 control flow.
*/

const (
	cachedTitlePrefix = "YouTube Video "
	cachedDescription = "Description not available for cached video."
)

type Orchestrator struct {
	metadataSink  metadata.MetadataSink
	runFinalizer  metadata.RunFinalizer
	store         cache.Store
	acquirer      transcript.Acquirer
	summarizer    summarize.Summarizer
	truncateLimit int
	observer      func(State)
}

func NewOrchestrator(
	metadataSink metadata.MetadataSink,
	runFinalizer metadata.RunFinalizer,
	store cache.Store,
	acquirer transcript.Acquirer,
	summarizer summarize.Summarizer,
	truncateLimit int,
) Orchestrator {
	if truncateLimit <= 0 {
		truncateLimit = DefaultTruncateLimit
	}
	return Orchestrator{
		metadataSink:  metadataSink,
		runFinalizer:  runFinalizer,
		store:         store,
		acquirer:      acquirer,
		summarizer:    summarizer,
		truncateLimit: truncateLimit,
	}
}

// Observe registers fn to be called with every state the run enters,
// the initial Start included.
func (o *Orchestrator) Observe(fn func(State)) {
	o.observer = fn
}

// Run drives one video from url to Done or Failed.
func (o *Orchestrator) Run(ctx context.Context, url string, force bool) (Result, error) {
	startTime := time.Now()

	var state State = Start{URL: url, Force: force}
	o.notify(state)

	for !state.terminal() {
		next := o.Step(ctx, state)
		o.metadataSink.RecordTransition(state.Name(), next.Name(), transitionAttrs(next))
		o.notify(next)
		state = next
	}

	switch final := state.(type) {
	case Done:
		o.runFinalizer.RecordFinalRunStats(final.Name(), len(final.Result.Writes), final.Result.CacheHit, time.Since(startTime))
		return final.Result, nil
	case Failed:
		o.runFinalizer.RecordFinalRunStats(final.Name(), len(final.Writes), final.CacheHit, time.Since(startTime))
		return Result{ID: final.Err.ID, CacheHit: final.CacheHit, Writes: final.Writes}, final.Err
	default:
		return Result{}, errors.New("pipeline: stopped in a non-terminal state")
	}
}

// Step performs exactly one transition. Terminal states are returned unchanged.
func (o *Orchestrator) Step(ctx context.Context, state State) State {
	if state.terminal() {
		return state
	}
	if err := ctx.Err(); err != nil {
		return canceled(state, err)
	}

	switch s := state.(type) {
	case Start:
		return o.resolve(s)
	case IdentifierResolved:
		return o.lookup(s)
	case CacheHit:
		return Summarizing{Meta: s.Meta, Phase: PhaseSummary, CacheHit: true}
	case Acquiring:
		return o.acquire(ctx, s)
	case Persisted:
		return Summarizing{Meta: s.Meta, Phase: PhaseSummary, Writes: s.Writes}
	case Summarizing:
		return o.summarize(ctx, s)
	default:
		return Failed{Err: &RunError{Stage: StageExtract, Err: errors.New("unknown state")}}
	}
}

func (o *Orchestrator) resolve(s Start) State {
	id, err := videoid.Extract(s.URL)
	if err != nil {
		o.recordError("videoid.Extract", metadata.CauseInvalidInput, err, "")
		return Failed{Err: &RunError{Stage: StageExtract, Err: err}}
	}
	return IdentifierResolved{ID: id, Force: s.Force}
}

func (o *Orchestrator) lookup(s IdentifierResolved) State {
	if s.Force || !o.store.Exists(s.ID) {
		return Acquiring{ID: s.ID}
	}

	text, err := o.store.ReadTranscript(s.ID)
	if err != nil {
		return Failed{Err: &RunError{Stage: StageCache, ID: s.ID, Err: err}, CacheHit: true}
	}
	meta := transcript.NewVideoMetadata(
		s.ID,
		cachedTitlePrefix+s.ID.String(),
		cachedDescription,
		text,
	)
	return CacheHit{Meta: meta}
}

func (o *Orchestrator) acquire(ctx context.Context, s Acquiring) State {
	meta, err := o.acquirer.Acquire(ctx, s.ID)
	if err != nil {
		return Failed{Err: &RunError{Stage: StageAcquire, ID: s.ID, Err: err}}
	}

	// Both writes are attempted; the first failure fails the run.
	var writes []cache.WriteResult
	var firstErr failure.ClassifiedError
	for _, artifact := range []struct {
		kind    cache.ArtifactKind
		content string
	}{
		{kind: cache.KindInfo, content: render.Info(meta)},
		{kind: cache.KindTranscript, content: meta.Transcript()},
	} {
		result, writeErr := o.store.Write(s.ID, artifact.kind, artifact.content)
		if writeErr != nil {
			if firstErr == nil {
				firstErr = writeErr
			}
			continue
		}
		writes = append(writes, result)
	}
	if firstErr != nil {
		return Failed{Err: &RunError{Stage: StagePersist, ID: s.ID, Err: firstErr}, Writes: writes}
	}

	return Persisted{Meta: meta, Writes: writes}
}

func (o *Orchestrator) summarize(ctx context.Context, s Summarizing) State {
	id := s.Meta.ID()
	text := Truncate(s.Meta.Transcript(), o.truncateLimit)

	switch s.Phase {
	case PhaseSummary:
		summary, err := o.summarizer.Summarize(ctx, text)
		if err != nil {
			return Failed{Err: &RunError{Stage: StageSummarize, ID: id, Err: err}, CacheHit: s.CacheHit, Writes: s.Writes}
		}
		result, writeErr := o.store.Write(id, cache.KindSummary, summary)
		if writeErr != nil {
			return Failed{Err: &RunError{Stage: StagePersist, ID: id, Err: writeErr}, CacheHit: s.CacheHit, Writes: s.Writes}
		}
		return Summarizing{
			Meta:     s.Meta,
			Phase:    PhaseHighlights,
			CacheHit: s.CacheHit,
			Summary:  summary,
			Writes:   appendWrite(s.Writes, result),
		}

	default:
		highlights, err := o.summarizer.Highlight(ctx, text)
		if err != nil {
			return Failed{Err: &RunError{Stage: StageHighlight, ID: id, Err: err}, CacheHit: s.CacheHit, Writes: s.Writes}
		}
		result, writeErr := o.store.Write(id, cache.KindHighlights, highlights)
		if writeErr != nil {
			return Failed{Err: &RunError{Stage: StagePersist, ID: id, Err: writeErr}, CacheHit: s.CacheHit, Writes: s.Writes}
		}
		return Done{Result: Result{
			ID:         id,
			Title:      s.Meta.Title(),
			Dir:        o.store.Dir(id),
			CacheHit:   s.CacheHit,
			Summary:    s.Summary,
			Highlights: highlights,
			Writes:     appendWrite(s.Writes, result),
		}}
	}
}

func canceled(state State, err error) Failed {
	failed := Failed{Err: &RunError{Stage: StageCanceled, Err: err}}
	switch s := state.(type) {
	case IdentifierResolved:
		failed.Err.ID = s.ID
	case Acquiring:
		failed.Err.ID = s.ID
	case CacheHit:
		failed.Err.ID = s.Meta.ID()
		failed.CacheHit = true
	case Persisted:
		failed.Err.ID = s.Meta.ID()
		failed.Writes = s.Writes
	case Summarizing:
		failed.Err.ID = s.Meta.ID()
		failed.CacheHit = s.CacheHit
		failed.Writes = s.Writes
	}
	return failed
}

func (o *Orchestrator) notify(state State) {
	if o.observer != nil {
		o.observer(state)
	}
}

func (o *Orchestrator) recordError(action string, cause metadata.ErrorCause, err error, id videoid.ID) {
	o.metadataSink.RecordError(
		time.Now(),
		"pipeline",
		action,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrVideoID, id.String()),
		},
	)
}

func transitionAttrs(next State) []metadata.Attribute {
	switch s := next.(type) {
	case IdentifierResolved:
		return []metadata.Attribute{metadata.NewAttr(metadata.AttrVideoID, s.ID.String())}
	case Summarizing:
		return []metadata.Attribute{
			metadata.NewAttr(metadata.AttrVideoID, s.Meta.ID().String()),
			metadata.NewAttr(metadata.AttrStage, s.Phase.String()),
		}
	case Failed:
		return []metadata.Attribute{
			metadata.NewAttr(metadata.AttrStage, string(s.Err.Stage)),
			metadata.NewAttr(metadata.AttrMessage, s.Err.Error()),
		}
	default:
		return nil
	}
}
