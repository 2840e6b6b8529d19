package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohmanhakim/yt-summarizer/internal/build"
	"github.com/rohmanhakim/yt-summarizer/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	force     bool
	outputDir string
	timeout   time.Duration
	userAgent string
	model     string
	logLevel  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yt-summarizer <youtube-url>",
	Short: "Summarize a single YouTube video from its transcript.",
	Long: `yt-summarizer resolves a YouTube URL to its video id, fetches the video's
title, description and caption transcript, caches them under <output-dir>/<id>/,
and asks a chat completion model for a Markdown summary and a list of
highlights of new or unusual information.

A cached transcript is reused on later runs unless --force is given.`,
	Args:    cobra.ExactArgs(1),
	Version: build.FullVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		loadDotEnv()

		cfg := InitConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := Summarize(ctx, cfg, args[0], force, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			stop()
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "ignore a cached transcript and fetch the video again")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "root output directory (default \"output\")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for each HTTP request to YouTube (default 30s)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for YouTube requests")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "chat completion model (default \"gpt-4\")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default \"info\")")
}

// loadDotEnv populates the process environment from ./.env when present.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %s\n", err)
	}
}

// InitConfig reads in config file, ENV variables and flags.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError layers defaults, the config file, the environment and
// CLI flags, in that order, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		fileCfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = &fileCfg
	}

	configBuilder, err := configBuilder.WithEnvironment()
	if err != nil {
		return config.Config{}, err
	}

	// Override with CLI flag values where provided
	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if timeout != 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if model != "" {
		configBuilder = configBuilder.WithModel(model)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	force = false
	outputDir = ""
	timeout = 0
	userAgent = ""
	model = ""
	logLevel = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetForceForTest(f bool) {
	force = f
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetModelForTest(m string) {
	model = m
}

func SetLogLevelForTest(level string) {
	logLevel = level
}
