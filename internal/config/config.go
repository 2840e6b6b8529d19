package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rohmanhakim/yt-summarizer/pkg/urlutil"
)

const (
	DefaultOutputDir           = "output"
	DefaultTimeout             = 30 * time.Second
	DefaultUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultWatchBaseURL        = "https://www.youtube.com"
	DefaultTruncateLimit       = 10000
	DefaultCompletionBaseURL   = "https://api.openai.com/v1"
	DefaultModel               = "gpt-4"
	DefaultTemperature         = float32(0.7)
	DefaultSummaryMaxTokens    = 1500
	DefaultHighlightsMaxTokens = 1000
	DefaultLogLevel            = "info"
)

type Config struct {
	//===============
	// Output
	//===============
	// Root directory under which every video gets its own <id> folder
	outputDir string

	//===============
	// Fetch
	//===============
	// Maximum time of a single HTTP request (watch page or caption track)
	timeout time.Duration
	// User agent sent with every YouTube request. In raw string
	userAgent string
	// Scheme and host the watch page URL is built on
	watchBaseURL string
	// Preferred caption languages, in order. The first track matching one wins
	languages []string

	//===============
	// Completion
	//===============
	// Maximum number of characters (runes) of transcript sent to the model
	truncateLimit int
	// Credential for the chat completion service. Never written to a config file
	apiKey string
	// Base URL of an OpenAI-compatible chat completion API
	completionBaseURL string
	// Chat model name
	model string
	// Sampling temperature for both summary and highlights
	temperature float32
	// Completion token ceiling for the summary request
	summaryMaxTokens int
	// Completion token ceiling for the highlights request
	highlightsMaxTokens int

	//===============
	// Logging
	//===============
	// zerolog level name: trace, debug, info, warn, error
	logLevel string
}

type configDTO struct {
	OutputDir           string   `json:"outputDir,omitempty"`
	Timeout             string   `json:"timeout,omitempty"`
	UserAgent           string   `json:"userAgent,omitempty"`
	WatchBaseURL        string   `json:"watchBaseUrl,omitempty"`
	Languages           []string `json:"languages,omitempty"`
	TruncateLimit       int      `json:"truncateLimit,omitempty"`
	CompletionBaseURL   string   `json:"completionBaseUrl,omitempty"`
	Model               string   `json:"model,omitempty"`
	Temperature         float32  `json:"temperature,omitempty"`
	SummaryMaxTokens    int      `json:"summaryMaxTokens,omitempty"`
	HighlightsMaxTokens int      `json:"highlightsMaxTokens,omitempty"`
	LogLevel            string   `json:"logLevel,omitempty"`
}

// environment holds the variables read from the process environment,
// usually populated from a .env file first.
type environment struct {
	APIKey            string `envconfig:"OPENAI_API_KEY"`
	CompletionBaseURL string `envconfig:"OPENAI_BASE_URL"`
	Model             string `envconfig:"OPENAI_MODEL"`
	OutputDir         string `envconfig:"YTS_OUTPUT_DIR"`
	LogLevel          string `envconfig:"YTS_LOG_LEVEL"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := *WithDefault()

	// Only override if non-zero value is provided
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %s", ErrConfigParsingFail, err.Error())
		}
		cfg.timeout = timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.WatchBaseURL != "" {
		cfg.watchBaseURL = dto.WatchBaseURL
	}
	if len(dto.Languages) > 0 {
		cfg.languages = dto.Languages
	}
	if dto.TruncateLimit != 0 {
		cfg.truncateLimit = dto.TruncateLimit
	}
	if dto.CompletionBaseURL != "" {
		cfg.completionBaseURL = dto.CompletionBaseURL
	}
	if dto.Model != "" {
		cfg.model = dto.Model
	}
	if dto.Temperature != 0 {
		cfg.temperature = dto.Temperature
	}
	if dto.SummaryMaxTokens != 0 {
		cfg.summaryMaxTokens = dto.SummaryMaxTokens
	}
	if dto.HighlightsMaxTokens != 0 {
		cfg.highlightsMaxTokens = dto.HighlightsMaxTokens
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}

	return cfg.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
// The API key has no default; it comes from the environment.
func WithDefault() *Config {
	return &Config{
		outputDir:           DefaultOutputDir,
		timeout:             DefaultTimeout,
		userAgent:           DefaultUserAgent,
		watchBaseURL:        DefaultWatchBaseURL,
		languages:           []string{"en"},
		truncateLimit:       DefaultTruncateLimit,
		completionBaseURL:   DefaultCompletionBaseURL,
		model:               DefaultModel,
		temperature:         DefaultTemperature,
		summaryMaxTokens:    DefaultSummaryMaxTokens,
		highlightsMaxTokens: DefaultHighlightsMaxTokens,
		logLevel:            DefaultLogLevel,
	}
}

// WithEnvironment overlays the OPENAI_* and YTS_* variables that are set.
// Unset variables leave the current value untouched.
func (c *Config) WithEnvironment() (*Config, error) {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return c, fmt.Errorf("%w: %s", ErrEnvironmentParsingFail, err.Error())
	}

	if env.APIKey != "" {
		c.apiKey = env.APIKey
	}
	if env.CompletionBaseURL != "" {
		c.completionBaseURL = env.CompletionBaseURL
	}
	if env.Model != "" {
		c.model = env.Model
	}
	if env.OutputDir != "" {
		c.outputDir = env.OutputDir
	}
	if env.LogLevel != "" {
		c.logLevel = env.LogLevel
	}
	return c, nil
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithWatchBaseURL(base string) *Config {
	c.watchBaseURL = base
	return c
}

func (c *Config) WithLanguages(languages []string) *Config {
	c.languages = languages
	return c
}

func (c *Config) WithTruncateLimit(limit int) *Config {
	c.truncateLimit = limit
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.apiKey = key
	return c
}

func (c *Config) WithCompletionBaseURL(base string) *Config {
	c.completionBaseURL = base
	return c
}

func (c *Config) WithModel(model string) *Config {
	c.model = model
	return c
}

func (c *Config) WithTemperature(temperature float32) *Config {
	c.temperature = temperature
	return c
}

func (c *Config) WithSummaryMaxTokens(tokens int) *Config {
	c.summaryMaxTokens = tokens
	return c
}

func (c *Config) WithHighlightsMaxTokens(tokens int) *Config {
	c.highlightsMaxTokens = tokens
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if strings.TrimSpace(c.outputDir) == "" {
		return Config{}, fmt.Errorf("%w: outputDir cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.timeout)
	}
	if c.truncateLimit <= 0 {
		return Config{}, fmt.Errorf("%w: truncateLimit must be positive, got %d", ErrInvalidConfig, c.truncateLimit)
	}
	if c.summaryMaxTokens <= 0 || c.highlightsMaxTokens <= 0 {
		return Config{}, fmt.Errorf("%w: max tokens must be positive, got summary=%d highlights=%d",
			ErrInvalidConfig, c.summaryMaxTokens, c.highlightsMaxTokens)
	}
	if c.temperature < 0 || c.temperature > 2 {
		return Config{}, fmt.Errorf("%w: temperature must be within [0, 2], got %v", ErrInvalidConfig, c.temperature)
	}
	watchBase, err := urlutil.NormalizeBase(c.watchBaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: watchBaseUrl: %s", ErrInvalidConfig, err.Error())
	}
	c.watchBaseURL = watchBase.String()
	completionBase, err := urlutil.NormalizeBase(c.completionBaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: completionBaseUrl: %s", ErrInvalidConfig, err.Error())
	}
	c.completionBaseURL = completionBase.String()

	// An empty language list would never select a track
	if len(c.languages) == 0 {
		c.languages = []string{"en"}
	}

	return *c, nil
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) WatchBaseURL() string {
	return c.watchBaseURL
}

func (c Config) Languages() []string {
	languages := make([]string, len(c.languages))
	copy(languages, c.languages)
	return languages
}

func (c Config) TruncateLimit() int {
	return c.truncateLimit
}

func (c Config) APIKey() string {
	return c.apiKey
}

func (c Config) CompletionBaseURL() string {
	return c.completionBaseURL
}

func (c Config) Model() string {
	return c.model
}

func (c Config) Temperature() float32 {
	return c.temperature
}

func (c Config) SummaryMaxTokens() int {
	return c.summaryMaxTokens
}

func (c Config) HighlightsMaxTokens() int {
	return c.highlightsMaxTokens
}

func (c Config) LogLevel() string {
	return c.logLevel
}
