package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
	"github.com/rohmanhakim/yt-summarizer/pkg/fileutil"
	"github.com/rohmanhakim/yt-summarizer/pkg/hashutil"
)

/*
Responsibilities
- Map a video ID to its entry directory
- Answer cache-hit checks (transcript presence is the only signal)
- Persist artifacts with full-content overwrite

Output Characteristics
- One directory per video ID, one file per artifact kind
- Entries are created lazily and never evicted
- No locking: a single writer per output directory is assumed
*/

type Store interface {
	Exists(id videoid.ID) bool
	ReadTranscript(id videoid.ID) (string, failure.ClassifiedError)
	Write(id videoid.ID, kind ArtifactKind, content string) (WriteResult, failure.ClassifiedError)
	Dir(id videoid.ID) string
}

const contentHashLength = 12

type LocalStore struct {
	outputDir    string
	metadataSink metadata.MetadataSink
}

func NewLocalStore(
	outputDir string,
	metadataSink metadata.MetadataSink,
) LocalStore {
	return LocalStore{
		outputDir:    outputDir,
		metadataSink: metadataSink,
	}
}

func (s *LocalStore) Dir(id videoid.ID) string {
	return filepath.Join(s.outputDir, id.String())
}

func (s *LocalStore) Path(id videoid.ID, kind ArtifactKind) string {
	return filepath.Join(s.Dir(id), kind.FileName())
}

// Exists reports whether the transcript of id is present and readable.
func (s *LocalStore) Exists(id videoid.ID) bool {
	return fileutil.IsReadableFile(s.Path(id, KindTranscript))
}

func (s *LocalStore) ReadTranscript(id videoid.ID) (string, failure.ClassifiedError) {
	path := s.Path(id, KindTranscript)
	content, err := os.ReadFile(path)
	if err != nil {
		cause := ErrCauseReadFailure
		if errors.Is(err, fs.ErrNotExist) {
			cause = ErrCauseNotFound
		}
		cacheErr := &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     cause,
			Path:      path,
		}
		s.recordError("LocalStore.ReadTranscript", id, cacheErr)
		return "", cacheErr
	}
	return string(content), nil
}

func (s *LocalStore) Write(
	id videoid.ID,
	kind ArtifactKind,
	content string,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := s.write(id, kind, content)
	if err != nil {
		s.recordError("LocalStore.Write", id, err)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		kind.metadataKind(),
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrVideoID, id.String()),
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrContentHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func (s *LocalStore) write(
	id videoid.ID,
	kind ArtifactKind,
	content string,
) (WriteResult, *CacheError) {
	if !kind.Valid() {
		return WriteResult{}, &CacheError{
			Message:   string(kind),
			Retryable: false,
			Cause:     ErrCauseInvalidKind,
			Path:      s.Dir(id),
		}
	}

	// Prepare entry directory
	if err := fileutil.EnsureDir(s.outputDir, id.String()); err != nil {
		return WriteResult{}, fromFileError(err, s.Dir(id))
	}

	fullPath := s.Path(id, kind)
	data := []byte(content)
	if err := fileutil.WriteAtomic(fullPath, data, 0644); err != nil {
		return WriteResult{}, fromFileError(err, fullPath)
	}

	contentHash := hashutil.ShortHash(data, contentHashLength)

	return NewWriteResult(id, kind, fullPath, contentHash), nil
}

func fromFileError(err failure.ClassifiedError, fallbackPath string) *CacheError {
	var fileErr *fileutil.FileError
	if !errors.As(err, &fileErr) {
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      fallbackPath,
		}
	}

	cause := ErrCauseWriteFailure
	switch fileErr.Cause {
	case fileutil.ErrCauseDiskFull:
		cause = ErrCauseDiskFull
	case fileutil.ErrCausePathError:
		cause = ErrCausePathError
	}
	path := fileErr.Path
	if path == "" {
		path = fallbackPath
	}
	return &CacheError{
		Message:   fileErr.Message,
		Retryable: false,
		Cause:     cause,
		Path:      path,
	}
}

func (s *LocalStore) recordError(action string, id videoid.ID, err *CacheError) {
	s.metadataSink.RecordError(
		time.Now(),
		"cache",
		action,
		mapCacheErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrVideoID, id.String()),
			metadata.NewAttr(metadata.AttrWritePath, err.Path),
		},
	)
}
