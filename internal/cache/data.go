package cache

import (
	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
)

// ArtifactKind is one of the four files kept per video.
type ArtifactKind string

const (
	KindInfo       ArtifactKind = "info"
	KindTranscript ArtifactKind = "transcript"
	KindSummary    ArtifactKind = "summary"
	KindHighlights ArtifactKind = "highlights"
)

// Kinds lists every artifact kind in the order they are produced by a run.
func Kinds() []ArtifactKind {
	return []ArtifactKind{KindInfo, KindTranscript, KindSummary, KindHighlights}
}

// FileName is the name of the file holding kind inside an entry directory.
func (k ArtifactKind) FileName() string {
	switch k {
	case KindInfo:
		return "info.md"
	case KindTranscript:
		return "transcript.txt"
	case KindSummary:
		return "summary.md"
	case KindHighlights:
		return "highlights.md"
	default:
		return ""
	}
}

func (k ArtifactKind) Valid() bool {
	return k.FileName() != ""
}

func (k ArtifactKind) metadataKind() metadata.ArtifactKind {
	switch k {
	case KindInfo:
		return metadata.ArtifactInfo
	case KindTranscript:
		return metadata.ArtifactTranscript
	case KindSummary:
		return metadata.ArtifactSummary
	case KindHighlights:
		return metadata.ArtifactHighlights
	default:
		return metadata.ArtifactKind(k)
	}
}

// Persistence

type WriteResult struct {
	id          videoid.ID
	kind        ArtifactKind
	path        string
	contentHash string
}

func NewWriteResult(
	id videoid.ID,
	kind ArtifactKind,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		id:          id,
		kind:        kind,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) ID() videoid.ID {
	return w.id
}

func (w *WriteResult) Kind() ArtifactKind {
	return w.kind
}

func (w *WriteResult) Path() string {
	return w.path
}

// ContentHash is the first 12 hex characters of the BLAKE3 digest of the written bytes.
func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
