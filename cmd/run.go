package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/streamlex/live-translator/internal/models"
	"github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/pkg/config"
)

var (
	runSourceLang string
	runTargetLang string
	runDuration   int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [stream-url]",
	Short: "Translate a live stream from the terminal",
	Long: `Run the pipeline against a live stream and print results to stdout,
without starting the API server. Press Ctrl-C to stop; a statistics
summary is printed on exit.

Example:
  live-translator run https://www.youtube.com/watch?v=XXXXXXXXXXX
  live-translator run --source en --target ja https://www.youtube.com/watch?v=XXXXXXXXXXX`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSourceLang, "source", "", "source language code (overrides config)")
	runCmd.Flags().StringVar(&runTargetLang, "target", "", "target language code (overrides config)")
	runCmd.Flags().IntVar(&runDuration, "duration", 0, "segment duration in seconds (overrides config)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runSourceLang != "" {
		cfg.Pipeline.SourceLanguage = runSourceLang
	}
	if runTargetLang != "" {
		cfg.Pipeline.TargetLanguage = runTargetLang
	}
	if runDuration > 0 {
		cfg.Pipeline.SegmentDuration = runDuration
	}

	coordinator, stats, err := buildCoordinator(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	coordinator.SetTranscriptionCallback(func(result models.TranscriptionResult) {
		fmt.Fprintf(out, "[%s] %s\n", result.Timestamp.Format("15:04:05"), result.OriginalText)
		if result.TranslatedText != nil {
			fmt.Fprintf(out, "  → %s (%.2f)\n", *result.TranslatedText, result.Confidence)
		}
	})
	coordinator.SetErrorCallback(func(message string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", message)
	})
	coordinator.SetStateCallback(func(state pipeline.State) {
		fmt.Fprintf(out, "-- pipeline %s --\n", state)
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := coordinator.Start(ctx, args[0]); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	coordinator.Stop()
	printStatsSummary(out, stats.Snapshot())
	return nil
}

func printStatsSummary(out io.Writer, snap pipeline.StatsSnapshot) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Session summary")
	fmt.Fprintln(out, "---------------")
	fmt.Fprintf(out, "Segments processed:  %d\n", snap.SegmentsProcessed)
	fmt.Fprintf(out, "Audio translated:    %.0fs\n", snap.TotalAudioTime)
	fmt.Fprintf(out, "Avg processing time: %.2fs\n", snap.AvgProcessingTime)
	fmt.Fprintf(out, "Speed ratio:         %.2fx\n", snap.ProcessingSpeedRatio)
	fmt.Fprintf(out, "Cache hit rate:      %.1f%%\n", snap.CacheHitRate*100)
	fmt.Fprintf(out, "Errors:              %d\n", snap.ErrorCount)
}
