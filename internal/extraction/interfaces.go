package extraction

import "context"

// StreamInfo holds the resolved metadata for a live source.
type StreamInfo struct {
	Title     string  `json:"title"`
	IsLive    bool    `json:"is_live"`
	Uploader  string  `json:"uploader"`
	ViewCount int64   `json:"view_count"`
	Duration  float64 `json:"duration"`
}

// SegmentFunc receives one extracted audio segment as 16-bit PCM WAV bytes.
type SegmentFunc func(audio []byte)

// Extractor resolves a live source and produces a continuous sequence of
// fixed-duration audio segments. Implementations own their transport
// (subprocess, network protocol) behind this contract.
type Extractor interface {
	// IsLive reports whether the referenced stream is actively live.
	IsLive(ctx context.Context, streamRef string) (bool, error)

	// Resolve fetches the stream metadata, failing if the source cannot
	// be reached or understood.
	Resolve(ctx context.Context, streamRef string) (*StreamInfo, error)

	// StartContinuous begins extracting segmentDuration-second audio
	// segments in the background, invoking onSegment for each one until
	// Stop is called or the context is cancelled.
	StartContinuous(ctx context.Context, streamRef string, onSegment SegmentFunc, segmentDuration int) error

	// Stop halts segment production. Safe to call when not extracting.
	Stop()
}
