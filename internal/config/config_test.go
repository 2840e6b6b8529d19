package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/yt-summarizer/internal/config"
)

func TestWithDefault(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir() != "output" {
		t.Errorf("expected OutputDir output, got %s", cfg.OutputDir())
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", cfg.Timeout())
	}
	if cfg.UserAgent() != config.DefaultUserAgent {
		t.Errorf("unexpected UserAgent: %s", cfg.UserAgent())
	}
	if cfg.WatchBaseURL() != "https://www.youtube.com" {
		t.Errorf("unexpected WatchBaseURL: %s", cfg.WatchBaseURL())
	}
	if len(cfg.Languages()) != 1 || cfg.Languages()[0] != "en" {
		t.Errorf("expected Languages [en], got %v", cfg.Languages())
	}
	if cfg.TruncateLimit() != 10000 {
		t.Errorf("expected TruncateLimit 10000, got %d", cfg.TruncateLimit())
	}
	if cfg.CompletionBaseURL() != "https://api.openai.com/v1" {
		t.Errorf("unexpected CompletionBaseURL: %s", cfg.CompletionBaseURL())
	}
	if cfg.Model() != "gpt-4" {
		t.Errorf("expected Model gpt-4, got %s", cfg.Model())
	}
	if cfg.Temperature() != 0.7 {
		t.Errorf("expected Temperature 0.7, got %v", cfg.Temperature())
	}
	if cfg.SummaryMaxTokens() != 1500 {
		t.Errorf("expected SummaryMaxTokens 1500, got %d", cfg.SummaryMaxTokens())
	}
	if cfg.HighlightsMaxTokens() != 1000 {
		t.Errorf("expected HighlightsMaxTokens 1000, got %d", cfg.HighlightsMaxTokens())
	}
	if cfg.LogLevel() != "info" {
		t.Errorf("expected LogLevel info, got %s", cfg.LogLevel())
	}
	if cfg.APIKey() != "" {
		t.Errorf("expected empty APIKey, got %s", cfg.APIKey())
	}
}

func TestWithSetters(t *testing.T) {
	cfg, err := config.WithDefault().
		WithOutputDir("/tmp/out").
		WithTimeout(5 * time.Second).
		WithUserAgent("test-agent").
		WithWatchBaseURL("http://localhost:8080").
		WithLanguages([]string{"de", "en"}).
		WithTruncateLimit(200).
		WithAPIKey("sk-test").
		WithCompletionBaseURL("http://localhost:9090/v1").
		WithModel("gpt-4o-mini").
		WithTemperature(0.2).
		WithSummaryMaxTokens(300).
		WithHighlightsMaxTokens(200).
		WithLogLevel("debug").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir() != "/tmp/out" {
		t.Errorf("expected OutputDir /tmp/out, got %s", cfg.OutputDir())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected Timeout 5s, got %v", cfg.Timeout())
	}
	if cfg.UserAgent() != "test-agent" {
		t.Errorf("expected UserAgent test-agent, got %s", cfg.UserAgent())
	}
	if cfg.WatchBaseURL() != "http://localhost:8080" {
		t.Errorf("unexpected WatchBaseURL: %s", cfg.WatchBaseURL())
	}
	if len(cfg.Languages()) != 2 || cfg.Languages()[0] != "de" {
		t.Errorf("expected Languages [de en], got %v", cfg.Languages())
	}
	if cfg.TruncateLimit() != 200 {
		t.Errorf("expected TruncateLimit 200, got %d", cfg.TruncateLimit())
	}
	if cfg.APIKey() != "sk-test" {
		t.Errorf("expected APIKey sk-test, got %s", cfg.APIKey())
	}
	if cfg.CompletionBaseURL() != "http://localhost:9090/v1" {
		t.Errorf("unexpected CompletionBaseURL: %s", cfg.CompletionBaseURL())
	}
	if cfg.Model() != "gpt-4o-mini" {
		t.Errorf("expected Model gpt-4o-mini, got %s", cfg.Model())
	}
	if cfg.Temperature() != 0.2 {
		t.Errorf("expected Temperature 0.2, got %v", cfg.Temperature())
	}
	if cfg.SummaryMaxTokens() != 300 {
		t.Errorf("expected SummaryMaxTokens 300, got %d", cfg.SummaryMaxTokens())
	}
	if cfg.HighlightsMaxTokens() != 200 {
		t.Errorf("expected HighlightsMaxTokens 200, got %d", cfg.HighlightsMaxTokens())
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("expected LogLevel debug, got %s", cfg.LogLevel())
	}
}

func TestBuild_NormalizesBaseURLs(t *testing.T) {
	cfg, err := config.WithDefault().
		WithWatchBaseURL("HTTPS://WWW.YOUTUBE.COM:443/").
		WithCompletionBaseURL("http://localhost:11434/v1/").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WatchBaseURL() != "https://www.youtube.com" {
		t.Errorf("expected normalized WatchBaseURL, got %s", cfg.WatchBaseURL())
	}
	if cfg.CompletionBaseURL() != "http://localhost:11434/v1" {
		t.Errorf("expected normalized CompletionBaseURL, got %s", cfg.CompletionBaseURL())
	}
}

func TestLanguages_ReturnsCopy(t *testing.T) {
	cfg, err := config.WithDefault().WithLanguages([]string{"en", "fr"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	languages := cfg.Languages()
	languages[0] = "xx"

	if cfg.Languages()[0] != "en" {
		t.Errorf("mutating the returned slice changed the config: %v", cfg.Languages())
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		builder   *config.Config
		expectErr bool
	}{
		{name: "defaults", builder: config.WithDefault(), expectErr: false},
		{name: "empty output dir", builder: config.WithDefault().WithOutputDir("  "), expectErr: true},
		{name: "zero timeout", builder: config.WithDefault().WithTimeout(0), expectErr: true},
		{name: "negative truncate limit", builder: config.WithDefault().WithTruncateLimit(-1), expectErr: true},
		{name: "zero summary tokens", builder: config.WithDefault().WithSummaryMaxTokens(0), expectErr: true},
		{name: "zero highlights tokens", builder: config.WithDefault().WithHighlightsMaxTokens(0), expectErr: true},
		{name: "temperature too high", builder: config.WithDefault().WithTemperature(2.5), expectErr: true},
		{name: "empty watch base", builder: config.WithDefault().WithWatchBaseURL(""), expectErr: true},
		{name: "watch base without scheme", builder: config.WithDefault().WithWatchBaseURL("www.youtube.com"), expectErr: true},
		{name: "completion base without host", builder: config.WithDefault().WithCompletionBaseURL("https://"), expectErr: true},
		{name: "empty languages fall back to en", builder: config.WithDefault().WithLanguages(nil), expectErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.builder.Build()
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, config.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cfg.Languages()) == 0 {
				t.Error("expected at least one language")
			}
		})
	}
}

func TestWithEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("OPENAI_BASE_URL", "http://proxy.local/v1")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("YTS_OUTPUT_DIR", "/data/videos")
	t.Setenv("YTS_LOG_LEVEL", "")

	builder, err := config.WithDefault().WithEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := builder.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey() != "sk-from-env" {
		t.Errorf("expected APIKey sk-from-env, got %s", cfg.APIKey())
	}
	if cfg.CompletionBaseURL() != "http://proxy.local/v1" {
		t.Errorf("unexpected CompletionBaseURL: %s", cfg.CompletionBaseURL())
	}
	if cfg.Model() != "gpt-4o" {
		t.Errorf("expected Model gpt-4o, got %s", cfg.Model())
	}
	if cfg.OutputDir() != "/data/videos" {
		t.Errorf("expected OutputDir /data/videos, got %s", cfg.OutputDir())
	}
	if cfg.LogLevel() != "info" {
		t.Errorf("empty variable should keep LogLevel info, got %s", cfg.LogLevel())
	}
}

func TestWithEnvironment_UnsetKeepsCurrent(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")

	builder, err := config.WithDefault().WithAPIKey("sk-flag").WithModel("custom").WithEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := builder.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey() != "sk-flag" {
		t.Errorf("expected APIKey sk-flag, got %s", cfg.APIKey())
	}
	if cfg.Model() != "custom" {
		t.Errorf("expected Model custom, got %s", cfg.Model())
	}
}

func TestWithConfigFile_FileDoesNotExist(t *testing.T) {
	_, err := config.WithConfigFile("/nonexistent/path/config.json")

	if err == nil {
		t.Fatal("expected error for non-existent file, got nil")
	}

	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("expected ErrFileDoesNotExist, got: %v", err)
	}
}

func TestWithConfigFile_InvalidJSON(t *testing.T) {
	configPath := writeConfigFile(t, "{invalid json content}")

	_, err := config.WithConfigFile(configPath)

	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}

	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail, got: %v", err)
	}
}

func TestWithConfigFile_InvalidTimeout(t *testing.T) {
	configPath := writeConfigFile(t, `{"timeout": "soon"}`)

	_, err := config.WithConfigFile(configPath)

	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail, got: %v", err)
	}
}

func TestWithConfigFile_InvalidValues(t *testing.T) {
	configPath := writeConfigFile(t, `{"truncateLimit": -5}`)

	_, err := config.WithConfigFile(configPath)

	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestWithConfigFile_ValidCompleteConfig(t *testing.T) {
	configPath := writeConfigFile(t, `{
	"outputDir": "videos",
	"timeout": "45s",
	"userAgent": "custom-agent/1.0",
	"watchBaseUrl": "https://m.youtube.com",
	"languages": ["ja", "en"],
	"truncateLimit": 8000,
	"completionBaseUrl": "http://localhost:11434/v1",
	"model": "llama3",
	"temperature": 0.3,
	"summaryMaxTokens": 900,
	"highlightsMaxTokens": 600,
	"logLevel": "warn"
}`)

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error loading valid config: %v", err)
	}

	if cfg.OutputDir() != "videos" {
		t.Errorf("expected OutputDir videos, got %s", cfg.OutputDir())
	}
	if cfg.Timeout() != 45*time.Second {
		t.Errorf("expected Timeout 45s, got %v", cfg.Timeout())
	}
	if cfg.UserAgent() != "custom-agent/1.0" {
		t.Errorf("expected UserAgent custom-agent/1.0, got %s", cfg.UserAgent())
	}
	if cfg.WatchBaseURL() != "https://m.youtube.com" {
		t.Errorf("unexpected WatchBaseURL: %s", cfg.WatchBaseURL())
	}
	if len(cfg.Languages()) != 2 || cfg.Languages()[0] != "ja" {
		t.Errorf("expected Languages [ja en], got %v", cfg.Languages())
	}
	if cfg.TruncateLimit() != 8000 {
		t.Errorf("expected TruncateLimit 8000, got %d", cfg.TruncateLimit())
	}
	if cfg.CompletionBaseURL() != "http://localhost:11434/v1" {
		t.Errorf("unexpected CompletionBaseURL: %s", cfg.CompletionBaseURL())
	}
	if cfg.Model() != "llama3" {
		t.Errorf("expected Model llama3, got %s", cfg.Model())
	}
	if cfg.Temperature() != 0.3 {
		t.Errorf("expected Temperature 0.3, got %v", cfg.Temperature())
	}
	if cfg.SummaryMaxTokens() != 900 {
		t.Errorf("expected SummaryMaxTokens 900, got %d", cfg.SummaryMaxTokens())
	}
	if cfg.HighlightsMaxTokens() != 600 {
		t.Errorf("expected HighlightsMaxTokens 600, got %d", cfg.HighlightsMaxTokens())
	}
	if cfg.LogLevel() != "warn" {
		t.Errorf("expected LogLevel warn, got %s", cfg.LogLevel())
	}
}

func TestWithConfigFile_PartialConfig(t *testing.T) {
	configPath := writeConfigFile(t, `{"model": "gpt-4o"}`)

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaultCfg, _ := config.WithDefault().Build()
	if cfg.Model() != "gpt-4o" {
		t.Errorf("expected Model gpt-4o, got %s", cfg.Model())
	}
	if cfg.OutputDir() != defaultCfg.OutputDir() {
		t.Errorf("expected default OutputDir %s, got %s", defaultCfg.OutputDir(), cfg.OutputDir())
	}
	if cfg.Timeout() != defaultCfg.Timeout() {
		t.Errorf("expected default Timeout %v, got %v", defaultCfg.Timeout(), cfg.Timeout())
	}
	if cfg.TruncateLimit() != defaultCfg.TruncateLimit() {
		t.Errorf("expected default TruncateLimit %d, got %d", defaultCfg.TruncateLimit(), cfg.TruncateLimit())
	}
}

func TestWithConfigFile_EmptyJSON(t *testing.T) {
	configPath := writeConfigFile(t, "{}")

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model() != config.DefaultModel {
		t.Errorf("expected default Model, got %s", cfg.Model())
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}
