package recognition

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI transcribes audio segments with the hosted Whisper API.
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI creates a remote Whisper recognizer.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{client: openai.NewClient(apiKey)}
}

// Name returns the provider identifier.
func (o *OpenAI) Name() string { return "openai" }

// Transcribe sends the WAV segment to the Whisper API.
func (o *OpenAI) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "segment.wav",
		Language: languageHint,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("whisper api transcription failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
