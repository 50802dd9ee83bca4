package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlex/live-translator/internal/services/translationcache"
	"github.com/streamlex/live-translator/pkg/audio"
)

// fakeRecognizer returns a canned transcript or error and records calls.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeRecognizer) Name() string { return "fake" }

// fakeTranslator returns a canned translation or error and records calls.
type fakeTranslator struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	return "en", nil
}

func (f *fakeTranslator) Name() string { return "fake" }

// pcmWAV builds a playable 16-bit mono WAV with a sine tone at the
// given amplitude. Loud tones pass the speech pre-filter, quiet ones
// do not.
func pcmWAV(amplitude float64) []byte {
	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(amplitude * math.Sin(2*math.Pi*float64(i)/32))
	}

	var data bytes.Buffer
	_ = binary.Write(&data, binary.LittleEndian, samples)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16000))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(32000))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func newTestSegment(wav []byte) *Segment {
	return &Segment{
		ID:    "seg-1",
		Audio: wav,
		Config: Config{
			SourceLanguage:  "en",
			TargetLanguage:  "ja",
			SegmentDuration: 10,
		},
	}
}

func TestProcessDropsSilentSegment(t *testing.T) {
	recognizer := &fakeRecognizer{text: "should not be called"}
	translator := &fakeTranslator{}
	stats := NewStats()
	processor := NewSegmentProcessor(recognizer, translator, translationcache.New(10), stats, audio.DefaultSpeechThreshold)

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(100)))

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, recognizer.calls)
	assert.Zero(t, stats.Snapshot().SegmentsProcessed)
}

func TestProcessTranscribesAndTranslates(t *testing.T) {
	recognizer := &fakeRecognizer{text: "hello world"}
	translator := &fakeTranslator{text: "こんにちは世界"}
	stats := NewStats()
	cache := translationcache.New(10)
	processor := NewSegmentProcessor(recognizer, translator, cache, stats, audio.DefaultSpeechThreshold)

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(8000)))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, "hello world", result.OriginalText)
	require.NotNil(t, result.TranslatedText)
	assert.Equal(t, "こんにちは世界", *result.TranslatedText)
	assert.Equal(t, "en", result.Language)
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)

	// The translation is now cached for the language pair.
	cached, ok := cache.Get("hello world", "en", "ja")
	require.True(t, ok)
	assert.Equal(t, "こんにちは世界", cached)

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.SegmentsProcessed)
	assert.Equal(t, int64(1), snap.CacheMisses)
	assert.InDelta(t, 10.0, snap.TotalAudioTime, 0.0001)
}

func TestProcessRecognitionFailure(t *testing.T) {
	recognizer := &fakeRecognizer{err: errors.New("model not loaded")}
	translator := &fakeTranslator{}
	processor := NewSegmentProcessor(recognizer, translator, translationcache.New(10), NewStats(), audio.DefaultSpeechThreshold)

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(8000)))

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Zero(t, translator.calls)
}

func TestProcessDropsEmptyTranscript(t *testing.T) {
	recognizer := &fakeRecognizer{text: "   \n  "}
	translator := &fakeTranslator{}
	stats := NewStats()
	processor := NewSegmentProcessor(recognizer, translator, translationcache.New(10), stats, audio.DefaultSpeechThreshold)

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(8000)))

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, translator.calls)
	assert.Zero(t, stats.Snapshot().SegmentsProcessed)
}

func TestProcessTranslationFailureStillEmits(t *testing.T) {
	recognizer := &fakeRecognizer{text: "hello world"}
	translator := &fakeTranslator{err: errors.New("rate limited")}
	stats := NewStats()
	processor := NewSegmentProcessor(recognizer, translator, translationcache.New(10), stats, audio.DefaultSpeechThreshold)

	var reported []string
	processor.notify = func(msg string) { reported = append(reported, msg) }

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(8000)))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "hello world", result.OriginalText)
	assert.Nil(t, result.TranslatedText)
	assert.Zero(t, result.Confidence)

	require.Len(t, reported, 1)
	assert.Contains(t, reported[0], "translation failed")

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.SegmentsProcessed)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

func TestProcessCacheHitSkipsTranslator(t *testing.T) {
	recognizer := &fakeRecognizer{text: "hello world"}
	translator := &fakeTranslator{text: "should not be used"}
	stats := NewStats()
	cache := translationcache.New(10)
	cache.Set("hello world", "en", "ja", "こんにちは世界")
	processor := NewSegmentProcessor(recognizer, translator, cache, stats, audio.DefaultSpeechThreshold)

	result, err := processor.Process(context.Background(), newTestSegment(pcmWAV(8000)))

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.TranslatedText)
	assert.Equal(t, "こんにちは世界", *result.TranslatedText)
	assert.Zero(t, translator.calls)

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Zero(t, snap.CacheMisses)
}

func TestProcessUsesSegmentConfigSnapshot(t *testing.T) {
	recognizer := &fakeRecognizer{text: "hello"}
	translator := &fakeTranslator{text: "안녕하세요"}
	cache := translationcache.New(10)
	processor := NewSegmentProcessor(recognizer, translator, cache, NewStats(), audio.DefaultSpeechThreshold)

	seg := newTestSegment(pcmWAV(8000))
	seg.Config.TargetLanguage = "ko"

	result, err := processor.Process(context.Background(), seg)

	require.NoError(t, err)
	require.NotNil(t, result)

	// Cached under the snapshot's language pair, not any other.
	_, ok := cache.Get("hello", "en", "ja")
	assert.False(t, ok)
	_, ok = cache.Get("hello", "en", "ko")
	assert.True(t, ok)
}
