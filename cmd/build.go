package cmd

import (
	"fmt"

	"github.com/streamlex/live-translator/internal/extraction"
	"github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/internal/recognition"
	"github.com/streamlex/live-translator/internal/services/translationcache"
	"github.com/streamlex/live-translator/internal/translation"
	"github.com/streamlex/live-translator/pkg/config"
)

// buildCoordinator assembles the pipeline from configuration: the
// extractor, the recognition and translation providers, the phrase
// cache, the statistics aggregate and the coordinator itself.
func buildCoordinator(cfg *config.Config) (*pipeline.Coordinator, *pipeline.Stats, error) {
	extractor := extraction.NewYTDLP(extraction.Options{
		YTDLPPath:      cfg.Extraction.YTDLPPath,
		FFmpegPath:     cfg.Extraction.FFmpegPath,
		SampleRate:     cfg.Extraction.SampleRate,
		ResolveTimeout: cfg.Extraction.ResolveTime,
	})

	var recognizer recognition.Recognizer
	switch cfg.Recognition.Engine {
	case "openai":
		recognizer = recognition.NewOpenAI(cfg.OpenAI.APIKey)
	case "whisper-local":
		recognizer = recognition.NewWhisperLocal(recognition.WhisperLocalOptions{
			WhisperPath: cfg.Recognition.WhisperPath,
			ModelPath:   cfg.Recognition.ModelPath,
			Threads:     cfg.Recognition.Threads,
			Timeout:     cfg.Recognition.Timeout,
		})
	default:
		return nil, nil, fmt.Errorf("unknown recognition engine %q", cfg.Recognition.Engine)
	}

	translator := translation.NewOpenAI(translation.OpenAIOptions{
		APIKey:          cfg.OpenAI.APIKey,
		Model:           cfg.Translation.Model,
		MaxTokens:       cfg.Translation.MaxTokens,
		RequestInterval: cfg.Translation.RequestInterval,
	})

	cache := translationcache.New(cfg.Pipeline.CacheSize)
	stats := pipeline.NewStats()
	processor := pipeline.NewSegmentProcessor(recognizer, translator, cache, stats, cfg.Pipeline.VADThreshold)

	coordinator := pipeline.NewCoordinator(extractor, processor, stats, pipeline.Config{
		SourceLanguage:  cfg.Pipeline.SourceLanguage,
		TargetLanguage:  cfg.Pipeline.TargetLanguage,
		SegmentDuration: cfg.Pipeline.SegmentDuration,
	}, pipeline.Options{
		Workers:      cfg.Pipeline.Workers,
		QueueSize:    cfg.Pipeline.QueueSize,
		StopTimeout:  cfg.Pipeline.StopTimeout,
		VADThreshold: cfg.Pipeline.VADThreshold,
	})

	return coordinator, stats, nil
}
