package transcript

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/fetcher"
	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/videoid"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

/*
Responsibilities
- Fetch the watch page of a video
- Resolve title, description and a caption track
- Fetch the caption track and flatten it to plain text

Acquisition never writes to the cache and never retries.
An empty transcript is a parse failure, not a success.
*/

type Acquirer interface {
	Acquire(ctx context.Context, id videoid.ID) (VideoMetadata, failure.ClassifiedError)
}

type YouTubeAcquirer struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	param        AcquireParam
}

func NewYouTubeAcquirer(
	metadataSink metadata.MetadataSink,
	pageFetcher fetcher.Fetcher,
	param AcquireParam,
) YouTubeAcquirer {
	return YouTubeAcquirer{
		metadataSink: metadataSink,
		fetcher:      pageFetcher,
		param:        param,
	}
}

func (a *YouTubeAcquirer) Acquire(
	ctx context.Context,
	id videoid.ID,
) (VideoMetadata, failure.ClassifiedError) {
	result, err := a.acquire(ctx, id)
	if err != nil {
		a.metadataSink.RecordError(
			time.Now(),
			"transcript",
			"YouTubeAcquirer.Acquire",
			mapAcquireErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrVideoID, id.String()),
				metadata.NewAttr(metadata.AttrURL, err.URL),
			},
		)
		return VideoMetadata{}, err
	}
	return result, nil
}

func (a *YouTubeAcquirer) acquire(ctx context.Context, id videoid.ID) (VideoMetadata, *AcquireError) {
	watchURL := id.WatchURL(a.param.watchBase)

	pageResult, fetchErr := a.fetcher.Fetch(
		ctx,
		fetcher.NewFetchParam(watchURL, a.param.userAgent, "text/html", "application/xhtml"),
	)
	if fetchErr != nil {
		return VideoMetadata{}, fetchFailed("watch page", watchURL, fetchErr)
	}

	page, err := parseWatchPage(pageResult.Body(), a.param.languages)
	if err != nil {
		return VideoMetadata{}, &AcquireError{
			Message:   "watch page is not parseable",
			Retryable: false,
			Cause:     ErrCauseParseFailed,
			URL:       watchURL.String(),
			Err:       err,
		}
	}
	if page.captionURL == "" {
		return VideoMetadata{}, &AcquireError{
			Message:   "no caption track found, captions may be disabled or the page shape changed",
			Retryable: false,
			Cause:     ErrCauseParseFailed,
			URL:       watchURL.String(),
		}
	}

	captionURL, err := resolveCaptionURL(watchURL, page.captionURL)
	if err != nil {
		return VideoMetadata{}, &AcquireError{
			Message:   "caption track url is invalid",
			Retryable: false,
			Cause:     ErrCauseParseFailed,
			URL:       page.captionURL,
			Err:       err,
		}
	}

	captionResult, fetchErr := a.fetcher.Fetch(
		ctx,
		fetcher.NewFetchParam(captionURL, a.param.userAgent),
	)
	if fetchErr != nil {
		return VideoMetadata{}, fetchFailed("caption track", captionURL, fetchErr)
	}

	text, err := parseTimedText(captionResult.Body())
	if err != nil {
		message := "caption track is malformed"
		if errors.Is(err, errEmptyTranscript) {
			message = "caption track is empty"
		}
		return VideoMetadata{}, &AcquireError{
			Message:   message,
			Retryable: false,
			Cause:     ErrCauseParseFailed,
			URL:       captionURL.String(),
			Err:       err,
		}
	}

	return NewVideoMetadata(id, page.title, page.description, text), nil
}

func resolveCaptionURL(watchURL url.URL, raw string) (url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, err
	}
	return *watchURL.ResolveReference(ref), nil
}

func fetchFailed(what string, target url.URL, err failure.ClassifiedError) *AcquireError {
	return &AcquireError{
		Message:   what + " request failed",
		Retryable: err.Severity() == failure.SeverityRecoverable,
		Cause:     ErrCauseFetchFailed,
		URL:       target.String(),
		Err:       err,
	}
}
