package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// languageNames maps ISO 639-1 codes to the names used in prompts.
var languageNames = map[string]string{
	"en": "English",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ru": "Russian",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// OpenAIOptions configures the GPT-backed translator.
type OpenAIOptions struct {
	APIKey          string
	Model           string
	MaxTokens       int
	RequestInterval time.Duration
}

// OpenAI translates text with a GPT chat completion. Requests are
// throttled so consecutive segments do not burst the API.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	limiter   *rate.Limiter
}

// NewOpenAI creates a GPT-backed translator.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	if opts.Model == "" {
		opts.Model = openai.GPT3Dot5Turbo
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 150
	}
	if opts.RequestInterval <= 0 {
		opts.RequestInterval = 100 * time.Millisecond
	}
	return &OpenAI{
		client:    openai.NewClient(opts.APIKey),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		limiter:   rate.NewLimiter(rate.Every(opts.RequestInterval), 1),
	}
}

// Name returns the provider identifier.
func (o *OpenAI) Name() string { return "openai" }

// Translate converts text from sourceLang to targetLang.
func (o *OpenAI) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit wait interrupted: %w", err)
	}

	systemPrompt := fmt.Sprintf(
		"You are a professional translator. Translate the given %s text to %s.\n"+
			"Please provide only the translation without any explanations or additional text.\n"+
			"Keep the tone and style of the original text.\n"+
			"If the text contains technical terms or proper nouns, preserve them appropriately.",
		languageName(sourceLang), languageName(targetLang),
	)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   o.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DetectLanguage returns the ISO 639-1 language code of the text.
func (o *OpenAI) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("cannot detect language of empty text")
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit wait interrupted: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Detect the language of the given text. Respond with only the ISO 639-1 language code (e.g., 'en', 'ja', 'ko').",
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("language detection failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("language detection returned no choices")
	}

	return strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}
