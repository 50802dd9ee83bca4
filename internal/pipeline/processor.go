package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/streamlex/live-translator/internal/models"
	"github.com/streamlex/live-translator/internal/recognition"
	"github.com/streamlex/live-translator/internal/services/translationcache"
	"github.com/streamlex/live-translator/internal/translation"
	"github.com/streamlex/live-translator/pkg/audio"
	"github.com/streamlex/live-translator/pkg/logging"
)

// Segment is one queued slice of audio together with the configuration
// snapshot taken when it was enqueued.
type Segment struct {
	ID         string
	Audio      []byte
	Config     Config
	EnqueuedAt time.Time
}

// SegmentProcessor turns one audio segment into a TranscriptionResult:
// voice-activity pre-filter, recognition, cache lookup, translation on
// miss, confidence scoring. Collaborator failures never escape as
// panics; they come back as errors for the worker to report.
type SegmentProcessor struct {
	recognizer   recognition.Recognizer
	translator   translation.Translator
	cache        *translationcache.Cache
	stats        *Stats
	vadThreshold float64
	logger       *logrus.Entry

	// notify surfaces partial failures that do not abort the segment.
	// The coordinator points it at its error reporting.
	notify func(string)
}

// NewSegmentProcessor wires a processor to its collaborators.
func NewSegmentProcessor(
	recognizer recognition.Recognizer,
	translator translation.Translator,
	cache *translationcache.Cache,
	stats *Stats,
	vadThreshold float64,
) *SegmentProcessor {
	return &SegmentProcessor{
		recognizer:   recognizer,
		translator:   translator,
		cache:        cache,
		stats:        stats,
		vadThreshold: vadThreshold,
		logger:       logging.WithComponent("processor"),
	}
}

// Process handles one segment. A (nil, nil) return means the segment was
// dropped without error: no speech detected or nothing recognized.
func (p *SegmentProcessor) Process(ctx context.Context, seg *Segment) (*models.TranscriptionResult, error) {
	start := time.Now()

	if !audio.DetectSpeech(seg.Audio, p.vadThreshold) {
		p.logger.WithField("segment", seg.ID).Debug("no speech detected, segment dropped")
		return nil, nil
	}

	text, err := p.recognizer.Transcribe(ctx, seg.Audio, seg.Config.SourceLanguage)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		p.logger.WithField("segment", seg.ID).Debug("recognition produced no text, segment dropped")
		return nil, nil
	}

	var translated *string
	if cached, ok := p.cache.Get(text, seg.Config.SourceLanguage, seg.Config.TargetLanguage); ok {
		translated = &cached
		p.stats.RecordCacheHit()
	} else {
		p.stats.RecordCacheMiss()
		value, err := p.translator.Translate(ctx, text, seg.Config.SourceLanguage, seg.Config.TargetLanguage)
		if err != nil {
			// Recognition succeeded even though translation did not;
			// the result is still emitted with the original text only.
			p.logger.WithField("segment", seg.ID).WithError(err).Warn("translation failed")
			if p.notify != nil {
				p.notify(fmt.Sprintf("translation failed for segment %s: %v", seg.ID, err))
			}
		} else if value != "" {
			p.cache.Set(text, seg.Config.SourceLanguage, seg.Config.TargetLanguage, value)
			translated = &value
		}
	}

	translatedText := ""
	if translated != nil {
		translatedText = *translated
	}

	result := &models.TranscriptionResult{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		OriginalText:   text,
		TranslatedText: translated,
		Confidence:     translation.Confidence(text, translatedText),
		Language:       seg.Config.SourceLanguage,
	}

	p.stats.RecordSegment(time.Since(start), float64(seg.Config.SegmentDuration))

	p.logger.WithFields(logrus.Fields{
		"segment":    seg.ID,
		"original":   text,
		"translated": translatedText,
		"confidence": result.Confidence,
	}).Info("segment processed")

	return result, nil
}
