package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamlex/live-translator/pkg/config"
	"github.com/streamlex/live-translator/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "live-translator",
	Short: "Live stream transcription and translation",
	Long: `Live Translator - Real-time transcription and translation of live streams

The pipeline pulls audio from a live stream, slices it into fixed-length
segments, transcribes each segment with Whisper and translates the text
into the target language, with caching for repeated phrases.

Features:
  • Live stream audio extraction via yt-dlp and ffmpeg
  • Speech recognition with local whisper.cpp or the OpenAI API
  • GPT-backed translation with an LRU phrase cache
  • HTTP control surface with a WebSocket result feed
  • Persistent transcription history`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if flag, _ := rootCmd.PersistentFlags().GetString("log-level"); flag != "" {
		level = flag
	}
	format := cfg.Logging.Format
	if jsonLogs, _ := rootCmd.PersistentFlags().GetBool("json-logs"); jsonLogs {
		format = "json"
	}
	logging.Init(level, format)
}
