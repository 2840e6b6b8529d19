package pipeline_test

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/cache"
	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/transcript"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
	"github.com/stretchr/testify/mock"
)

// memoryStore is an in-memory cache.Store.
type memoryStore struct {
	mu       sync.Mutex
	files    map[string]string
	attempts []cache.ArtifactKind
	failOn   map[cache.ArtifactKind]bool
	readErr  failure.ClassifiedError
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		files:  map[string]string{},
		failOn: map[cache.ArtifactKind]bool{},
	}
}

func (m *memoryStore) key(id videoid.ID, kind cache.ArtifactKind) string {
	return path.Join(m.Dir(id), kind.FileName())
}

func (m *memoryStore) Dir(id videoid.ID) string {
	return path.Join("/mem", id.String())
}

func (m *memoryStore) Exists(id videoid.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[m.key(id, cache.KindTranscript)]
	return ok
}

func (m *memoryStore) ReadTranscript(id videoid.ID) (string, failure.ClassifiedError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	content, ok := m.files[m.key(id, cache.KindTranscript)]
	if !ok {
		return "", &cache.CacheError{Cause: cache.ErrCauseNotFound, Path: m.key(id, cache.KindTranscript)}
	}
	return content, nil
}

func (m *memoryStore) Write(id videoid.ID, kind cache.ArtifactKind, content string) (cache.WriteResult, failure.ClassifiedError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, kind)
	p := m.key(id, kind)
	if m.failOn[kind] {
		return cache.WriteResult{}, &cache.CacheError{
			Message: "disk on fire",
			Cause:   cache.ErrCauseWriteFailure,
			Path:    p,
		}
	}
	m.files[p] = content
	return cache.NewWriteResult(id, kind, p, "0123456789ab"), nil
}

func (m *memoryStore) seed(id videoid.ID, kind cache.ArtifactKind, content string) {
	m.files[m.key(id, kind)] = content
}

func (m *memoryStore) content(id videoid.ID, kind cache.ArtifactKind) (string, bool) {
	c, ok := m.files[m.key(id, kind)]
	return c, ok
}

// acquirerStub counts network acquisitions.
type acquirerStub struct {
	calls int
	meta  transcript.VideoMetadata
	err   failure.ClassifiedError
}

func (a *acquirerStub) Acquire(ctx context.Context, id videoid.ID) (transcript.VideoMetadata, failure.ClassifiedError) {
	a.calls++
	if a.err != nil {
		return transcript.VideoMetadata{}, a.err
	}
	return transcript.NewVideoMetadata(id, a.meta.Title(), a.meta.Description(), a.meta.Transcript()), nil
}

// summarizerMock is a testify mock for summarize.Summarizer.
type summarizerMock struct {
	mock.Mock
}

func (m *summarizerMock) Summarize(ctx context.Context, text string) (string, failure.ClassifiedError) {
	args := m.Called(ctx, text)
	return args.String(0), classified(args.Get(1))
}

func (m *summarizerMock) Highlight(ctx context.Context, text string) (string, failure.ClassifiedError) {
	args := m.Called(ctx, text)
	return args.String(0), classified(args.Get(1))
}

func classified(v any) failure.ClassifiedError {
	if v == nil {
		return nil
	}
	return v.(failure.ClassifiedError)
}

func happySummarizer() *summarizerMock {
	m := &summarizerMock{}
	m.On("Summarize", mock.Anything, mock.Anything).Return("# Summary\n\nshort version", nil)
	m.On("Highlight", mock.Anything, mock.Anything).Return("# Highlights\n\nnovel bits", nil)
	return m
}

// metadataSinkMock records transitions and final stats.
type metadataSinkMock struct {
	metadata.NoopSink
	transitions []string
	errors      []string
	finalCalls  int
	finalState  string
	finalWrites int
	finalHit    bool
}

func (m *metadataSinkMock) RecordTransition(from string, to string, attrs []metadata.Attribute) {
	m.transitions = append(m.transitions, from+"->"+to)
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, packageName+":"+action)
}

func (m *metadataSinkMock) RecordFinalRunStats(
	finalState string,
	totalWrites int,
	cacheHit bool,
	duration time.Duration,
) {
	m.finalCalls++
	m.finalState = finalState
	m.finalWrites = totalWrites
	m.finalHit = cacheHit
}
