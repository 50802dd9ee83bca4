package history

import (
	"context"

	"github.com/streamlex/live-translator/internal/models"
)

// Service defines the interface for transcription history operations
type Service interface {
	// SaveResult persists one emitted transcription result.
	SaveResult(ctx context.Context, sessionID, targetLang string, result models.TranscriptionResult) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.TranscriptionRecord, error)

	// ListBySession returns all records of one pipeline session, oldest first.
	ListBySession(ctx context.Context, sessionID string) ([]models.TranscriptionRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}

// Repository defines the interface for transcription history persistence
type Repository interface {
	// Create stores a new record.
	Create(ctx context.Context, record *models.TranscriptionRecord) error

	// ListRecent returns up to limit records ordered by capture time descending.
	ListRecent(ctx context.Context, limit int) ([]models.TranscriptionRecord, error)

	// ListBySession returns records of one session ordered by capture time ascending.
	ListBySession(ctx context.Context, sessionID string) ([]models.TranscriptionRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
