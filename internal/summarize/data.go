package summarize

// CompletionParam carries everything the completion client needs.
// The API key is passed in explicitly; nothing here reads the environment.
type CompletionParam struct {
	apiKey              string
	baseURL             string
	model               string
	temperature         float32
	summaryMaxTokens    int
	highlightsMaxTokens int
}

func NewCompletionParam(
	apiKey string,
	baseURL string,
	model string,
	temperature float32,
	summaryMaxTokens int,
	highlightsMaxTokens int,
) CompletionParam {
	return CompletionParam{
		apiKey:              apiKey,
		baseURL:             baseURL,
		model:               model,
		temperature:         temperature,
		summaryMaxTokens:    summaryMaxTokens,
		highlightsMaxTokens: highlightsMaxTokens,
	}
}

func (p CompletionParam) Model() string {
	return p.model
}

// task is one kind of completion request.
type task struct {
	name      string
	system    string
	user      string
	maxTokens int
}

const (
	taskSummary    = "summary"
	taskHighlights = "highlights"

	summarySystemPrompt = "You write concise, informative summaries of YouTube video transcripts. " +
		"Cover the main points, key insights and important details. Answer in Markdown."
	summaryUserPrompt = "Summarize the following YouTube video transcript. " +
		"Organize the summary with headings and bullet points where they help:\n\n"

	highlightsSystemPrompt = "You identify new, unique or unusual information in video transcripts. " +
		"Extract insights that are not commonly known or that show innovative thinking. Answer in Markdown."
	highlightsUserPrompt = "Analyze the following transcript and point out any new, unique or unusual information. " +
		"Highlight insights that may not be widely known. Use headings and emphasis:\n\n"
)

func (p CompletionParam) summaryTask() task {
	return task{
		name:      taskSummary,
		system:    summarySystemPrompt,
		user:      summaryUserPrompt,
		maxTokens: p.summaryMaxTokens,
	}
}

func (p CompletionParam) highlightsTask() task {
	return task{
		name:      taskHighlights,
		system:    highlightsSystemPrompt,
		user:      highlightsUserPrompt,
		maxTokens: p.highlightsMaxTokens,
	}
}
