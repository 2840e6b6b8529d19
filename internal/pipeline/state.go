package pipeline

import (
	"github.com/rohmanhakim/yt-summarizer/internal/cache"
	"github.com/rohmanhakim/yt-summarizer/internal/transcript"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
)

/*
Run State Machine

	Start -> IdentifierResolved -> CacheHit  -> Summarizing -> Done
	                            -> Acquiring -> Persisted -> Summarizing

Every state may move to Failed, which absorbs. Summarizing is entered
twice, once per completion call, so the summary is durable before the
highlights request is made.

States are values. Step never mutates the state it is given; the slice
of writes is copied on every append.
*/

type State interface {
	Name() string
	terminal() bool
}

// Start is the initial state of a run.
type Start struct {
	URL   string
	Force bool
}

type IdentifierResolved struct {
	ID    videoid.ID
	Force bool
}

// CacheHit carries the cached transcript with placeholder title and description.
type CacheHit struct {
	Meta transcript.VideoMetadata
}

type Acquiring struct {
	ID videoid.ID
}

// Persisted means info and transcript of a fresh acquisition are on disk.
type Persisted struct {
	Meta   transcript.VideoMetadata
	Writes []cache.WriteResult
}

type Phase int

const (
	PhaseSummary Phase = iota
	PhaseHighlights
)

func (p Phase) String() string {
	if p == PhaseHighlights {
		return "highlights"
	}
	return "summary"
}

type Summarizing struct {
	Meta     transcript.VideoMetadata
	Phase    Phase
	CacheHit bool
	Summary  string
	Writes   []cache.WriteResult
}

type Done struct {
	Result Result
}

// Failed is the absorbing error state.
type Failed struct {
	Err      *RunError
	CacheHit bool
	Writes   []cache.WriteResult
}

func (Start) Name() string              { return "Start" }
func (IdentifierResolved) Name() string { return "IdentifierResolved" }
func (CacheHit) Name() string           { return "CacheHit" }
func (Acquiring) Name() string          { return "Acquiring" }
func (Persisted) Name() string          { return "Persisted" }
func (Summarizing) Name() string        { return "Summarizing" }
func (Done) Name() string               { return "Done" }
func (Failed) Name() string             { return "Error" }

func (Start) terminal() bool              { return false }
func (IdentifierResolved) terminal() bool { return false }
func (CacheHit) terminal() bool           { return false }
func (Acquiring) terminal() bool          { return false }
func (Persisted) terminal() bool          { return false }
func (Summarizing) terminal() bool        { return false }
func (Done) terminal() bool               { return true }
func (Failed) terminal() bool             { return true }

// IsTerminal reports whether s is Done or Failed.
func IsTerminal(s State) bool {
	return s.terminal()
}

type Result struct {
	ID         videoid.ID
	Title      string
	Dir        string
	CacheHit   bool
	Summary    string
	Highlights string
	Writes     []cache.WriteResult
}

func appendWrite(writes []cache.WriteResult, w ...cache.WriteResult) []cache.WriteResult {
	out := make([]cache.WriteResult, 0, len(writes)+len(w))
	out = append(out, writes...)
	return append(out, w...)
}
