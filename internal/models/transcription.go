package models

import (
	"time"

	"gorm.io/gorm"
)

// TranscriptionResult is a single recognized (and possibly translated)
// audio segment. It is immutable once created; ownership passes to the
// callback consumer.
type TranscriptionResult struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	OriginalText   string    `json:"original_text"`
	TranslatedText *string   `json:"translated_text,omitempty"`
	Confidence     float64   `json:"confidence"`
	Language       string    `json:"language"`
}

// Translated reports whether translation succeeded for this segment.
func (r TranscriptionResult) Translated() bool {
	return r.TranslatedText != nil
}

// TranscriptionRecord persists an emitted TranscriptionResult. Only the
// serve mode writes these; the pipeline itself has no storage dependency.
type TranscriptionRecord struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	ResultID       string         `gorm:"uniqueIndex;size:36" json:"result_id"`
	SessionID      string         `gorm:"index;size:36" json:"session_id"`
	CapturedAt     time.Time      `json:"captured_at"`
	OriginalText   string         `gorm:"type:text" json:"original_text"`
	TranslatedText *string        `gorm:"type:text" json:"translated_text,omitempty"`
	Confidence     float64        `json:"confidence"`
	SourceLanguage string         `gorm:"size:8" json:"source_language"`
	TargetLanguage string         `gorm:"size:8" json:"target_language"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for TranscriptionRecord
func (TranscriptionRecord) TableName() string {
	return "transcriptions"
}
