package transcript

import (
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
)

const (
	DefaultTitle       = "Untitled YouTube Video"
	DefaultDescription = "No description available."
)

// VideoMetadata is produced once per successful acquisition and never mutated.
type VideoMetadata struct {
	id          videoid.ID
	title       string
	description string
	transcript  string
}

func NewVideoMetadata(
	id videoid.ID,
	title string,
	description string,
	transcript string,
) VideoMetadata {
	return VideoMetadata{
		id:          id,
		title:       title,
		description: description,
		transcript:  transcript,
	}
}

func (v VideoMetadata) ID() videoid.ID {
	return v.id
}

func (v VideoMetadata) Title() string {
	return v.title
}

func (v VideoMetadata) Description() string {
	return v.description
}

func (v VideoMetadata) Transcript() string {
	return v.transcript
}

type AcquireParam struct {
	watchBase string
	userAgent string
	languages []string
}

// NewAcquireParam configures where and how the watch page is requested.
// languages is the caption preference order, e.g. ["en", "en-US"].
func NewAcquireParam(watchBase string, userAgent string, languages []string) AcquireParam {
	return AcquireParam{
		watchBase: watchBase,
		userAgent: userAgent,
		languages: languages,
	}
}

// captionTrack is one entry of captions.playerCaptionsTracklistRenderer.captionTracks.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// playerResponse is the subset of ytInitialPlayerResponse this package reads.
type playerResponse struct {
	VideoDetails struct {
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// watchPage is what the watch page yields before the caption fetch.
type watchPage struct {
	title       string
	description string
	captionURL  string
}
