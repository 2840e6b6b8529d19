package summarize

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
	openai "github.com/sashabaranov/go-openai"
)

/*
Responsibilities
- Turn a transcript into a summary and a highlights report
- Talk to an OpenAI-compatible chat completion endpoint

Each call is a single request. Callers truncate the input;
this package sends what it is given.
*/

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, failure.ClassifiedError)
	Highlight(ctx context.Context, text string) (string, failure.ClassifiedError)
}

type OpenAIClient struct {
	metadataSink metadata.MetadataSink
	client       *openai.Client
	param        CompletionParam
}

func NewOpenAIClient(
	metadataSink metadata.MetadataSink,
	param CompletionParam,
) OpenAIClient {
	cfg := openai.DefaultConfig(param.apiKey)
	if param.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(param.baseURL, "/")
	}
	return OpenAIClient{
		metadataSink: metadataSink,
		client:       openai.NewClientWithConfig(cfg),
		param:        param,
	}
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, failure.ClassifiedError) {
	return c.run(ctx, c.param.summaryTask(), text)
}

func (c *OpenAIClient) Highlight(ctx context.Context, text string) (string, failure.ClassifiedError) {
	return c.run(ctx, c.param.highlightsTask(), text)
}

func (c *OpenAIClient) run(ctx context.Context, t task, text string) (string, failure.ClassifiedError) {
	content, err := c.complete(ctx, t, text)
	if err != nil {
		c.metadataSink.RecordError(
			time.Now(),
			"summarize",
			"OpenAIClient."+t.name,
			mapCompletionErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrModel, c.param.model),
				metadata.NewAttr(metadata.AttrStage, t.name),
			},
		)
		return "", err
	}
	return content, nil
}

func (c *OpenAIClient) complete(ctx context.Context, t task, text string) (string, *CompletionError) {
	if strings.TrimSpace(c.param.apiKey) == "" {
		return "", &CompletionError{
			Message:   "OPENAI_API_KEY is not set",
			Retryable: false,
			Cause:     ErrCauseMissingCredential,
			Task:      t.name,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.param.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.system},
			{Role: openai.ChatMessageRoleUser, Content: t.user + text},
		},
		Temperature: c.param.temperature,
		MaxTokens:   t.maxTokens,
	})
	if err != nil {
		return "", classifyRequestError(t.name, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &CompletionError{
			Message:   "no content in completion response",
			Retryable: false,
			Cause:     ErrCauseEmptyCompletion,
			Task:      t.name,
		}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyRequestError(taskName string, err error) *CompletionError {
	completionErr := &CompletionError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseRequestFailed,
		Task:      taskName,
		Err:       err,
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		completionErr.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		completionErr.StatusCode = reqErr.HTTPStatusCode
	default:
		// transport failure, worth a re-run
		completionErr.Retryable = true
		return completionErr
	}

	completionErr.Retryable = completionErr.StatusCode == http.StatusTooManyRequests ||
		completionErr.StatusCode >= http.StatusInternalServerError
	return completionErr
}
