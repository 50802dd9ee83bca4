package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/streamlex/live-translator/pkg/logging"
)

// ytdlpInfo mirrors the subset of `yt-dlp -j` output we consume.
type ytdlpInfo struct {
	Title     string        `json:"title"`
	IsLive    bool          `json:"is_live"`
	Uploader  string        `json:"uploader"`
	ViewCount int64         `json:"view_count"`
	Duration  float64       `json:"duration"`
	URL       string        `json:"url"`
	Formats   []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	URL    string  `json:"url"`
	ACodec string  `json:"acodec"`
	VCodec string  `json:"vcodec"`
	ABR    float64 `json:"abr"`
}

// Options configures the YTDLP extractor.
type Options struct {
	YTDLPPath      string
	FFmpegPath     string
	SampleRate     int
	ResolveTimeout time.Duration
}

// DefaultOptions returns extractor options with sane defaults.
func DefaultOptions() Options {
	return Options{
		YTDLPPath:      "yt-dlp",
		FFmpegPath:     "ffmpeg",
		SampleRate:     16000,
		ResolveTimeout: 30 * time.Second,
	}
}

// YTDLP extracts audio from live streams by resolving the media URL with
// yt-dlp and slicing fixed-duration PCM segments with ffmpeg.
type YTDLP struct {
	opts   Options
	logger *logrus.Entry

	mu        sync.Mutex
	streaming bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewYTDLP creates an extractor using the given binary paths.
func NewYTDLP(opts Options) *YTDLP {
	if opts.YTDLPPath == "" {
		opts.YTDLPPath = "yt-dlp"
	}
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 16000
	}
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = 30 * time.Second
	}
	return &YTDLP{
		opts:   opts,
		logger: logging.WithComponent("extraction"),
	}
}

// ValidateBinaries checks that yt-dlp and ffmpeg are on the path.
func (y *YTDLP) ValidateBinaries() error {
	if _, err := exec.LookPath(y.opts.YTDLPPath); err != nil {
		return fmt.Errorf("yt-dlp binary not found: %s", y.opts.YTDLPPath)
	}
	if _, err := exec.LookPath(y.opts.FFmpegPath); err != nil {
		return fmt.Errorf("ffmpeg binary not found: %s", y.opts.FFmpegPath)
	}
	return nil
}

// IsLive reports whether the referenced stream is actively live.
func (y *YTDLP) IsLive(ctx context.Context, streamRef string) (bool, error) {
	info, err := y.resolve(ctx, streamRef)
	if err != nil {
		return false, err
	}
	return info.IsLive, nil
}

// Resolve fetches stream metadata via yt-dlp.
func (y *YTDLP) Resolve(ctx context.Context, streamRef string) (*StreamInfo, error) {
	info, err := y.resolve(ctx, streamRef)
	if err != nil {
		return nil, err
	}
	return &StreamInfo{
		Title:     info.Title,
		IsLive:    info.IsLive,
		Uploader:  info.Uploader,
		ViewCount: info.ViewCount,
		Duration:  info.Duration,
	}, nil
}

func (y *YTDLP) resolve(ctx context.Context, streamRef string) (*ytdlpInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, y.opts.ResolveTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, y.opts.YTDLPPath, "-j", "--no-warnings", streamRef)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp resolve failed for %s: %w (stderr: %s)", streamRef, err, stderr.String())
	}

	var info ytdlpInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata parse failed: %w", err)
	}
	return &info, nil
}

// bestAudioURL picks the highest-bitrate audio-only format, falling back
// to any format that carries audio.
func bestAudioURL(info *ytdlpInfo) string {
	var best *ytdlpFormat
	for i := range info.Formats {
		f := &info.Formats[i]
		if f.ACodec == "none" || f.URL == "" {
			continue
		}
		audioOnly := f.VCodec == "none"
		if best == nil {
			best = f
			continue
		}
		bestAudioOnly := best.VCodec == "none"
		if audioOnly != bestAudioOnly {
			if audioOnly {
				best = f
			}
			continue
		}
		if f.ABR > best.ABR {
			best = f
		}
	}
	if best != nil {
		return best.URL
	}
	return info.URL
}

// StartContinuous begins extracting segments in the background.
func (y *YTDLP) StartContinuous(ctx context.Context, streamRef string, onSegment SegmentFunc, segmentDuration int) error {
	if segmentDuration <= 0 {
		return fmt.Errorf("segment duration must be positive, got %d", segmentDuration)
	}

	y.mu.Lock()
	if y.streaming {
		y.mu.Unlock()
		return fmt.Errorf("extraction already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	y.streaming = true
	y.cancel = cancel
	y.done = make(chan struct{})
	done := y.done
	y.mu.Unlock()

	go func() {
		defer close(done)
		y.extractLoop(runCtx, streamRef, onSegment, segmentDuration)
	}()

	return nil
}

func (y *YTDLP) extractLoop(ctx context.Context, streamRef string, onSegment SegmentFunc, segmentDuration int) {
	info, err := y.resolve(ctx, streamRef)
	if err != nil {
		y.logger.WithError(err).Error("failed to resolve audio URL, extraction aborted")
		return
	}
	audioURL := bestAudioURL(info)
	if audioURL == "" {
		y.logger.Error("no audio format available, extraction aborted")
		return
	}

	y.logger.WithField("stream", streamRef).Info("audio extraction started")

	for ctx.Err() == nil {
		segment, err := y.extractSegment(ctx, audioURL, segmentDuration)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			y.logger.WithError(err).Warn("segment extraction failed, retrying")
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}
		onSegment(segment)
	}
}

// extractSegment reads one fixed-duration mono PCM WAV slice from the live
// audio URL via ffmpeg.
func (y *YTDLP) extractSegment(ctx context.Context, audioURL string, duration int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(duration+10)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, y.opts.FFmpegPath,
		"-i", audioURL,
		"-t", fmt.Sprintf("%d", duration),
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", y.opts.SampleRate),
		"-ac", "1",
		"-f", "wav",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg segment extraction failed: %w (stderr: %s)", err, tail(stderr.String(), 200))
	}
	return stdout.Bytes(), nil
}

// Stop halts segment production and waits for the extraction loop to exit.
func (y *YTDLP) Stop() {
	y.mu.Lock()
	if !y.streaming {
		y.mu.Unlock()
		return
	}
	y.streaming = false
	cancel := y.cancel
	done := y.done
	y.mu.Unlock()

	cancel()
	<-done
	y.logger.Info("audio extraction stopped")
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
