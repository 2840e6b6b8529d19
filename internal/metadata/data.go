package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause is for observability only.
	 - It must never be used to derive retry, continuation, or abort decisions.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseInvalidInput
  - The operator supplied something the pipeline cannot interpret.
  - e.g. a URL without a recognizable video identifier.

# CauseNetworkFailure
  - Transport failure or remote unavailability (timeouts, DNS, non-2xx).

# CauseContentInvalid
  - Content was fetched but could not be used.
  - e.g. captions disabled, changed page shape, malformed timedtext XML.

# CauseStorageFailure
  - Failure while reading or persisting cache artifacts.

# CauseCompletionFailure
  - The completion service rejected the request or answered with nothing.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseInvalidInput
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseCompletionFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseInvalidInput:
		return "invalid_input"
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseCompletionFailure:
		return "completion_failure"
	default:
		return "unknown"
	}
}

// ArtifactKind names a persisted file as seen by observability consumers.
type ArtifactKind string

const (
	ArtifactInfo       ArtifactKind = "info"
	ArtifactTranscript ArtifactKind = "transcript"
	ArtifactSummary    ArtifactKind = "summary"
	ArtifactHighlights ArtifactKind = "highlights"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrVideoID     AttributeKey = "video_id"
	AttrStage       AttributeKey = "stage"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrWritePath   AttributeKey = "write_path"
	AttrContentHash AttributeKey = "content_hash"
	AttrMessage     AttributeKey = "message"
	AttrModel       AttributeKey = "model"
)
