package recognition

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/streamlex/live-translator/pkg/logging"
)

// WhisperLocalOptions configures the local whisper.cpp recognizer.
type WhisperLocalOptions struct {
	WhisperPath string
	ModelPath   string
	Threads     int
	Timeout     time.Duration
}

// WhisperLocal transcribes audio segments with a local whisper.cpp
// binary (whisper-cli from Homebrew, or the main binary from a source
// build).
type WhisperLocal struct {
	opts   WhisperLocalOptions
	logger *logrus.Entry
}

// NewWhisperLocal creates a local whisper recognizer.
func NewWhisperLocal(opts WhisperLocalOptions) *WhisperLocal {
	if opts.WhisperPath == "" {
		if _, err := exec.LookPath("whisper-cli"); err == nil {
			opts.WhisperPath = "whisper-cli"
		} else {
			opts.WhisperPath = "/app/bin/main"
		}
	}
	if opts.ModelPath == "" {
		opts.ModelPath = "./models/ggml-base.en.bin"
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	return &WhisperLocal{
		opts:   opts,
		logger: logging.WithComponent("recognition"),
	}
}

// Name returns the provider identifier.
func (w *WhisperLocal) Name() string { return "whisper-local" }

// Transcribe writes the segment to a temp file and runs whisper over it.
func (w *WhisperLocal) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	if _, err := exec.LookPath(w.opts.WhisperPath); err != nil {
		return "", fmt.Errorf("whisper binary not found: %s", w.opts.WhisperPath)
	}

	tempFile, err := os.CreateTemp("", "segment-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			w.logger.WithError(err).Warn("failed to remove temp audio file")
		}
	}()

	if _, err := tempFile.Write(audio); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp audio file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, w.opts.WhisperPath,
		"-m", w.opts.ModelPath,
		"-f", tempPath,
		"-l", languageHint,
		"-t", strconv.Itoa(w.opts.Threads),
		"-nt", // no timestamps
	)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("whisper command failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}
