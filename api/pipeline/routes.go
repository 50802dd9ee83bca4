package pipeline

import (
	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// RegisterRoutes registers pipeline control routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/pipeline/start - Start processing a live stream
	router.POST("/start", PostStart(deps))

	// POST /api/v1/pipeline/stop - Stop the running pipeline
	router.POST("/stop", PostStop(deps))

	// GET /api/v1/pipeline/state - Current state, session and config
	router.GET("/state", GetState(deps))

	// PUT /api/v1/pipeline/config - Partial configuration update
	router.PUT("/config", PutConfig(deps))

	// GET /api/v1/pipeline/stats - Processing statistics
	router.GET("/stats", GetStats(deps))

	// POST /api/v1/pipeline/stats/reset - Zero the statistics counters
	router.POST("/stats/reset", PostResetStats(deps))
}
