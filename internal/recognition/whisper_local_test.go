package recognition

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWhisperLocalDefaults(t *testing.T) {
	recognizer := NewWhisperLocal(WhisperLocalOptions{})

	assert.NotEmpty(t, recognizer.opts.WhisperPath)
	assert.Equal(t, "./models/ggml-base.en.bin", recognizer.opts.ModelPath)
	assert.Equal(t, 4, recognizer.opts.Threads)
	assert.Equal(t, time.Minute, recognizer.opts.Timeout)
	assert.Equal(t, "whisper-local", recognizer.Name())
}

func TestTranscribeMissingBinary(t *testing.T) {
	recognizer := NewWhisperLocal(WhisperLocalOptions{
		WhisperPath: "/nonexistent/whisper-binary",
	})

	_, err := recognizer.Transcribe(context.Background(), []byte("audio"), "en")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "whisper binary not found")
}
