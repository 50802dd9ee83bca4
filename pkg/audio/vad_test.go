package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSpeech(t *testing.T) {
	tests := []struct {
		name      string
		wav       []byte
		threshold float64
		want      bool
	}{
		{
			name:      "silence is filtered",
			wav:       nil, // filled in below
			threshold: DefaultSpeechThreshold,
			want:      false,
		},
		{
			name:      "quiet tone below threshold",
			wav:       nil, // filled in below
			threshold: DefaultSpeechThreshold,
			want:      false,
		},
		{
			name:      "loud tone above threshold",
			wav:       nil, // filled in below
			threshold: DefaultSpeechThreshold,
			want:      true,
		},
		{
			name:      "zero threshold falls back to default",
			wav:       nil, // filled in below
			threshold: 0,
			want:      true,
		},
	}

	tests[0].wav = buildWAV(t, make([]int16, 1600))
	tests[1].wav = buildWAV(t, tone(1600, 100))
	tests[2].wav = buildWAV(t, tone(1600, 8000))
	tests[3].wav = buildWAV(t, tone(1600, 8000))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSpeech(tt.wav, tt.threshold))
		})
	}
}

func TestDetectSpeechUnparseableDefaultsToSpeech(t *testing.T) {
	assert.True(t, DetectSpeech([]byte("garbage bytes"), DefaultSpeechThreshold))
	assert.True(t, DetectSpeech(buildWAV(t, nil)[:20], DefaultSpeechThreshold))
}
