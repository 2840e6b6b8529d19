package failure_test

import (
	"errors"
	"testing"

	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
	"github.com/stretchr/testify/assert"
)

type stubError struct {
	severity failure.Severity
}

func (s *stubError) Error() string               { return "stub" }
func (s *stubError) Severity() failure.Severity { return s.severity }

func TestIsRecoverable(t *testing.T) {
	assert.True(t, failure.IsRecoverable(&stubError{severity: failure.SeverityRecoverable}))
	assert.False(t, failure.IsRecoverable(&stubError{severity: failure.SeverityFatal}))
	assert.False(t, failure.IsRecoverable(errors.New("plain")))
	assert.False(t, failure.IsRecoverable(nil))
}
