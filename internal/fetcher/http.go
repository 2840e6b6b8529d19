package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

/*
Responsibilities

- Perform HTTP GET requests
- Apply browser-like headers and a bounded timeout
- Classify responses

Fetch Semantics

- Only 2xx responses are returned
- Failures are returned once, never retried here
- Every request is reported to the metadata sink

The fetcher never parses content; it only returns bytes and metadata.
*/

type HttpFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

// NewHttpFetcher builds a fetcher whose every request, body read included,
// is bounded by timeout. A non-positive timeout leaves requests unbounded.
func NewHttpFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
) HttpFetcher {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return HttpFetcher{
		metadataSink: metadataSink,
		httpClient:   client,
	}
}

func (h *HttpFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HttpFetcher.Fetch"
	startTime := time.Now()

	result, err := h.performFetch(ctx, fetchParam)

	duration := time.Since(startTime)

	var statusCode int
	var contentType string
	if err != nil {
		statusCode = err.StatusCode
	} else {
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl.String(),
		statusCode,
		duration,
		contentType,
	)

	if err != nil {
		h.recordFetchError(callerMethod, fetchParam.fetchUrl, err)
		return FetchResult{}, err
	}

	return result, nil
}

func (h *HttpFetcher) recordFetchError(callerMethod string, fetchUrl url.URL, err *FetchError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
	}
	if err.StatusCode != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, fmt.Sprintf("%d", err.StatusCode)))
	}
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}

func (h *HttpFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, *FetchError) {
	fetchUrl := fetchParam.fetchUrl
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidRequest,
		}
	}

	// Apply browser-like headers
	headers := requestHeaders(fetchParam.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if fetchErr := classifyStatus(resp.StatusCode); fetchErr != nil {
		return FetchResult{}, fetchErr
	}

	contentType := resp.Header.Get("Content-Type")
	if !acceptsContentType(fetchParam.contentTypes, contentType) {
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("content type %q not in %v", contentType, fetchParam.contentTypes),
			Retryable:  false,
			Cause:      ErrCauseContentTypeInvalid,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchErr := classifyTransportError(err)
		if fetchErr.Cause == ErrCauseNetworkFailure {
			fetchErr.Cause = ErrCauseReadResponseBodyError
		}
		fetchErr.StatusCode = resp.StatusCode
		return FetchResult{}, fetchErr
	}

	// Build response headers map
	responseHeaders := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			responseHeaders[key] = values[0]
		}
	}

	result := FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			contentType:         contentType,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     responseHeaders,
		},
	}

	return result, nil
}

func classifyTransportError(err error) *FetchError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &FetchError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	case errors.Is(err, context.Canceled):
		return &FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCanceled,
		}
	default:
		return &FetchError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
}

func classifyStatus(statusCode int) *FetchError {
	switch {
	case statusCode >= 500:
		return &FetchError{
			Message:    fmt.Sprintf("server error: %d", statusCode),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: statusCode,
		}
	case statusCode == http.StatusTooManyRequests:
		return &FetchError{
			Message:    "rate limited (429)",
			Retryable:  true,
			Cause:      ErrCauseRequestTooMany,
			StatusCode: statusCode,
		}
	case statusCode == http.StatusForbidden:
		return &FetchError{
			Message:    "access forbidden (403)",
			Retryable:  false,
			Cause:      ErrCauseRequestPageForbidden,
			StatusCode: statusCode,
		}
	case statusCode == http.StatusNotFound:
		return &FetchError{
			Message:    "not found (404)",
			Retryable:  false,
			Cause:      ErrCauseRequestNotFound,
			StatusCode: statusCode,
		}
	case statusCode >= 400:
		return &FetchError{
			Message:    fmt.Sprintf("client error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRequest4xx,
			StatusCode: statusCode,
		}
	case statusCode >= 300:
		// http.Client follows redirects; landing here means it gave up
		return &FetchError{
			Message:    fmt.Sprintf("redirect error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRedirectLimitExceeded,
			StatusCode: statusCode,
		}
	case statusCode < 200:
		return &FetchError{
			Message:    fmt.Sprintf("unexpected status: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseNetworkFailure,
			StatusCode: statusCode,
		}
	}
	return nil
}

func acceptsContentType(accepted []string, contentType string) bool {
	if len(accepted) == 0 {
		return true
	}
	contentType = strings.ToLower(contentType)
	for _, want := range accepted {
		if strings.Contains(contentType, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"DNT":             "1",
	}
}
