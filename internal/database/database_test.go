package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlex/live-translator/internal/models"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{
			name:   "in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "file database",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
		{
			name:   "file database in a new directory",
			dbPath: filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Initialize(tt.dbPath, false)
			require.NoError(t, err)
			require.NotNil(t, db)
			require.NotNil(t, db.DB)
			defer func() { _ = db.Close() }()

			assert.NoError(t, db.HealthCheck())
		})
	}
}

func TestAutoMigrate(t *testing.T) {
	db, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.AutoMigrate(&models.TranscriptionRecord{}))
	assert.True(t, db.Migrator().HasTable("transcriptions"))
}

func TestHealthCheckAfterClose(t *testing.T) {
	db, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck())
}
