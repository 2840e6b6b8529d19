package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata collected per run
- Fetch timestamps, HTTP status codes, durations
- Artifact paths and content hashes
- State machine transitions
- Classified errors

Metadata is write-only.
No component may read metadata to influence pipeline decisions.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)

	RecordTransition(from string, to string, attrs []Attribute)
}

type RunFinalizer interface {
	RecordFinalRunStats(
		finalState string,
		totalWrites int,
		cacheHit bool,
		duration time.Duration,
	)
}

/*
Recorder emits metadata events as structured zerolog lines.
Every line carries the run id so interleaved runs against the same
output directory can be told apart.
*/
type Recorder struct {
	runId  string
	logger zerolog.Logger
}

func NewRecorder(runId string, logger zerolog.Logger) Recorder {
	return Recorder{
		runId:  runId,
		logger: logger.With().Str("run_id", runId).Logger(),
	}
}

func (r *Recorder) RunID() string {
	return r.runId
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	event := r.logger.Error().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Str("cause", cause.String())
	withAttrs(event, attrs).Msg(errorString)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
) {
	r.logger.Debug().
		Str("url", fetchUrl).
		Int("http_status", httpStatus).
		Dur("duration", duration).
		Str("content_type", contentType).
		Msg("fetch")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	event := r.logger.Info().
		Str("artifact", string(kind)).
		Str("path", path)
	withAttrs(event, attrs).Msg("artifact written")
}

func (r *Recorder) RecordTransition(from string, to string, attrs []Attribute) {
	event := r.logger.Debug().
		Str("from", from).
		Str("to", to)
	withAttrs(event, attrs).Msg("transition")
}

/*
RecordFinalRunStats records a terminal summary of a run.

Contract:
  - MUST be called exactly once per run, after the state machine stops.
  - Recorded stats MUST NOT influence control flow.
*/
func (r *Recorder) RecordFinalRunStats(
	finalState string,
	totalWrites int,
	cacheHit bool,
	duration time.Duration,
) {
	r.logger.Info().
		Str("final_state", finalState).
		Int("total_writes", totalWrites).
		Bool("cache_hit", cacheHit).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("run finished")
}

func withAttrs(event *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, attr := range attrs {
		event = event.Str(string(attr.Key), attr.Value)
	}
	return event
}

// NoopSink implements MetadataSink and RunFinalizer but does nothing.
// The CLI injects a Recorder; tests usually inject NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordTransition(from string, to string, attrs []Attribute) {}

func (n *NoopSink) RecordFinalRunStats(
	finalState string,
	totalWrites int,
	cacheHit bool,
	duration time.Duration,
) {
}
