package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rohmanhakim/yt-summarizer/internal/cache"
	"github.com/rohmanhakim/yt-summarizer/internal/config"
	"github.com/rohmanhakim/yt-summarizer/internal/fetcher"
	"github.com/rohmanhakim/yt-summarizer/internal/metadata"
	"github.com/rohmanhakim/yt-summarizer/internal/pipeline"
	"github.com/rohmanhakim/yt-summarizer/internal/render"
	"github.com/rohmanhakim/yt-summarizer/internal/summarize"
	"github.com/rohmanhakim/yt-summarizer/internal/transcript"
	"github.com/rs/zerolog"
)

// Summarize runs the whole pipeline for rawURL. Progress and the final
// artifact listing go to out, structured logs go to logOut.
func Summarize(
	ctx context.Context,
	cfg config.Config,
	rawURL string,
	force bool,
	out io.Writer,
	logOut io.Writer,
) error {
	logger, err := newLogger(cfg.LogLevel(), logOut)
	if err != nil {
		return err
	}

	recorder := metadata.NewRecorder(uuid.NewString(), logger)
	orchestrator := newOrchestrator(cfg, &recorder)
	orchestrator.Observe(progress(out))

	result, runErr := orchestrator.Run(ctx, rawURL, force)
	if runErr != nil {
		return runErr
	}

	report(out, result)
	return nil
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, level)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(parsed).
		With().
		Timestamp().
		Logger(), nil
}

func newOrchestrator(cfg config.Config, recorder *metadata.Recorder) *pipeline.Orchestrator {
	httpFetcher := fetcher.NewHttpFetcher(recorder, cfg.Timeout())
	acquirer := transcript.NewYouTubeAcquirer(
		recorder,
		&httpFetcher,
		transcript.NewAcquireParam(cfg.WatchBaseURL(), cfg.UserAgent(), cfg.Languages()),
	)
	store := cache.NewLocalStore(cfg.OutputDir(), recorder)
	client := summarize.NewOpenAIClient(
		recorder,
		summarize.NewCompletionParam(
			cfg.APIKey(),
			cfg.CompletionBaseURL(),
			cfg.Model(),
			cfg.Temperature(),
			cfg.SummaryMaxTokens(),
			cfg.HighlightsMaxTokens(),
		),
	)

	orchestrator := pipeline.NewOrchestrator(
		recorder,
		recorder,
		&store,
		&acquirer,
		&client,
		cfg.TruncateLimit(),
	)
	return &orchestrator
}

// progress prints one line per state worth telling the user about.
func progress(out io.Writer) func(pipeline.State) {
	return func(state pipeline.State) {
		switch s := state.(type) {
		case pipeline.IdentifierResolved:
			fmt.Fprintf(out, "Processing YouTube video: %s\n", s.ID)
			if s.Force {
				fmt.Fprintln(out, "Force enabled, ignoring cached transcript")
			}
		case pipeline.Acquiring:
			fmt.Fprintln(out, "Fetching video data...")
		case pipeline.CacheHit:
			fmt.Fprintln(out, "Using cached transcript...")
		case pipeline.Summarizing:
			if s.Phase == pipeline.PhaseHighlights {
				fmt.Fprintln(out, "Generating highlights...")
			} else {
				fmt.Fprintln(out, "Generating summary...")
			}
		case pipeline.Done:
			fmt.Fprintln(out, "Process completed successfully!")
		}
	}
}

func report(out io.Writer, result pipeline.Result) {
	fmt.Fprintf(out, "Video: %s\n", result.Title)
	fmt.Fprintf(out, "Files saved to: %s%c\n", result.Dir, filepath.Separator)
	for _, w := range result.Writes {
		fmt.Fprintf(out, "  - %s (%s)\n", filepath.Base(w.Path()), w.ContentHash())
	}

	headings := render.Outline(result.Summary)
	if len(headings) == 0 {
		return
	}
	fmt.Fprintln(out, "Summary sections:")
	for _, h := range headings {
		fmt.Fprintf(out, "  * %s\n", h)
	}
}
