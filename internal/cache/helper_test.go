package cache_test

import (
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	recordErrorCalled      bool
	recordErrorPackageName string
	recordErrorAction      string
	recordErrorCause       metadata.ErrorCause
	recordErrorDetails     string
	recordErrorAttrs       []metadata.Attribute
	recordArtifactCalls    int
	recordArtifactKind     metadata.ArtifactKind
	recordArtifactPath     string
	recordArtifactAttrs    []metadata.Attribute
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorPackageName = packageName
	m.recordErrorAction = action
	m.recordErrorCause = cause
	m.recordErrorDetails = details
	m.recordErrorAttrs = attrs
}

func (m *metadataSinkMock) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
) {
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.recordArtifactCalls++
	m.recordArtifactKind = kind
	m.recordArtifactPath = path
	m.recordArtifactAttrs = attrs
}

func (m *metadataSinkMock) RecordTransition(from string, to string, attrs []metadata.Attribute) {}

// findAttrValue finds an attribute value by key in a slice of attributes
func findAttrValue(attrs []metadata.Attribute, key metadata.AttributeKey) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}
