package history

import (
	"context"

	"gorm.io/gorm"

	"github.com/streamlex/live-translator/internal/models"
)

// GormRepository implements Repository backed by GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create stores a new record
func (r *GormRepository) Create(ctx context.Context, record *models.TranscriptionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListRecent returns up to limit records ordered by capture time descending
func (r *GormRepository) ListRecent(ctx context.Context, limit int) ([]models.TranscriptionRecord, error) {
	var records []models.TranscriptionRecord
	err := r.db.WithContext(ctx).
		Order("captured_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// ListBySession returns records of one session ordered by capture time ascending
func (r *GormRepository) ListBySession(ctx context.Context, sessionID string) ([]models.TranscriptionRecord, error) {
	var records []models.TranscriptionRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("captured_at ASC").
		Find(&records).Error
	return records, err
}

// Count returns the number of stored records
func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TranscriptionRecord{}).Count(&count).Error
	return count, err
}
