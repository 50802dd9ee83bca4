package types

import (
	"context"

	"github.com/streamlex/live-translator/api/live"
	"github.com/streamlex/live-translator/internal/database"
	"github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/internal/services/history"
)

// PipelineController is the surface the handlers need from the
// pipeline coordinator.
type PipelineController interface {
	Start(ctx context.Context, streamRef string) error
	Stop()
	State() pipeline.State
	SessionID() string
	Config() pipeline.Config
	Configure(update pipeline.ConfigUpdate) error
	Stats() pipeline.StatsSnapshot
	ResetStats()
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Pipeline PipelineController
	History  history.Service
	Live     *live.Hub
}
