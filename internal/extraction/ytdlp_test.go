package extraction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestAudioURL(t *testing.T) {
	tests := []struct {
		name string
		info *ytdlpInfo
		want string
	}{
		{
			name: "prefers audio-only over muxed",
			info: &ytdlpInfo{Formats: []ytdlpFormat{
				{URL: "muxed", ACodec: "aac", VCodec: "h264", ABR: 320},
				{URL: "audio-only", ACodec: "opus", VCodec: "none", ABR: 128},
			}},
			want: "audio-only",
		},
		{
			name: "picks the highest bitrate among audio-only",
			info: &ytdlpInfo{Formats: []ytdlpFormat{
				{URL: "low", ACodec: "opus", VCodec: "none", ABR: 64},
				{URL: "high", ACodec: "opus", VCodec: "none", ABR: 160},
				{URL: "mid", ACodec: "opus", VCodec: "none", ABR: 128},
			}},
			want: "high",
		},
		{
			name: "skips video-only formats",
			info: &ytdlpInfo{Formats: []ytdlpFormat{
				{URL: "video-only", ACodec: "none", VCodec: "h264"},
				{URL: "muxed", ACodec: "aac", VCodec: "h264", ABR: 96},
			}},
			want: "muxed",
		},
		{
			name: "falls back to the top-level url",
			info: &ytdlpInfo{URL: "direct", Formats: []ytdlpFormat{
				{URL: "video-only", ACodec: "none", VCodec: "h264"},
			}},
			want: "direct",
		},
		{
			name: "no formats at all",
			info: &ytdlpInfo{URL: "direct"},
			want: "direct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestAudioURL(tt.info))
		})
	}
}

func TestYtdlpInfoParsing(t *testing.T) {
	raw := `{
		"title": "Morning News Live",
		"is_live": true,
		"uploader": "newsroom",
		"view_count": 1523,
		"duration": 0,
		"formats": [
			{"url": "https://cdn.example.com/a", "acodec": "opus", "vcodec": "none", "abr": 128.5},
			{"url": "https://cdn.example.com/v", "acodec": "none", "vcodec": "vp9"}
		]
	}`

	var info ytdlpInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &info))

	assert.Equal(t, "Morning News Live", info.Title)
	assert.True(t, info.IsLive)
	assert.Equal(t, int64(1523), info.ViewCount)
	require.Len(t, info.Formats, 2)
	assert.Equal(t, "https://cdn.example.com/a", bestAudioURL(&info))
}

func TestNewYTDLPDefaults(t *testing.T) {
	extractor := NewYTDLP(Options{})

	assert.Equal(t, "yt-dlp", extractor.opts.YTDLPPath)
	assert.Equal(t, "ffmpeg", extractor.opts.FFmpegPath)
	assert.Equal(t, 16000, extractor.opts.SampleRate)
}

func TestStartContinuousRejectsBadDuration(t *testing.T) {
	extractor := NewYTDLP(DefaultOptions())

	err := extractor.StartContinuous(context.Background(), "https://example.com/live", func([]byte) {}, 0)
	assert.Error(t, err)
}

func TestStopWithoutStartIsSafe(t *testing.T) {
	extractor := NewYTDLP(DefaultOptions())
	extractor.Stop()
	extractor.Stop()
}
