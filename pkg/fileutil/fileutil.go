package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      fullDir,
		}
	}
	return nil
}

// WriteAtomic replaces the content of path in full.
// The bytes go to a temporary sibling first and are renamed over path,
// so readers see either the previous content or the new one.
// The parent directory must already exist.
func WriteAtomic(path string, content []byte, perm os.FileMode) failure.ClassifiedError {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return classifyWriteError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return classifyWriteError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return classifyWriteError(path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return classifyWriteError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return classifyWriteError(path, err)
	}
	return nil
}

func classifyWriteError(path string, err error) *FileError {
	if errors.Is(err, syscall.ENOSPC) {
		return &FileError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseDiskFull,
			Path:      path,
		}
	}
	return &FileError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseWriteFailed,
		Path:      path,
	}
}

// IsReadableFile reports whether path names a regular file the process can open.
func IsReadableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
