package history

import (
	"context"
	"errors"

	"github.com/streamlex/live-translator/internal/models"
)

// DefaultListLimit caps ListRecent when the caller passes no usable limit.
const DefaultListLimit = 100

// service implements the Service interface
type service struct {
	repo     Repository
	maxLimit int
}

// NewService creates a new history service. maxLimit bounds any listing
// request; values below one fall back to DefaultListLimit.
func NewService(repo Repository, maxLimit int) Service {
	if maxLimit < 1 {
		maxLimit = DefaultListLimit
	}
	return &service{repo: repo, maxLimit: maxLimit}
}

// SaveResult persists one emitted transcription result
func (s *service) SaveResult(ctx context.Context, sessionID, targetLang string, result models.TranscriptionResult) error {
	if result.OriginalText == "" {
		return errors.New("result has no original text")
	}

	record := &models.TranscriptionRecord{
		ResultID:       result.ID,
		SessionID:      sessionID,
		CapturedAt:     result.Timestamp,
		OriginalText:   result.OriginalText,
		TranslatedText: result.TranslatedText,
		Confidence:     result.Confidence,
		SourceLanguage: result.Language,
		TargetLanguage: targetLang,
	}
	return s.repo.Create(ctx, record)
}

// ListRecent returns up to limit records, newest first
func (s *service) ListRecent(ctx context.Context, limit int) ([]models.TranscriptionRecord, error) {
	if limit < 1 || limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// ListBySession returns all records of one pipeline session
func (s *service) ListBySession(ctx context.Context, sessionID string) ([]models.TranscriptionRecord, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	return s.repo.ListBySession(ctx, sessionID)
}

// Count returns the number of stored records
func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
