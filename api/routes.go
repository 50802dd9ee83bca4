package api

import (
	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/health"
	"github.com/streamlex/live-translator/api/live"
	"github.com/streamlex/live-translator/api/pipeline"
	"github.com/streamlex/live-translator/api/transcriptions"
	"github.com/streamlex/live-translator/api/types"
	"github.com/streamlex/live-translator/api/version"
	"github.com/streamlex/live-translator/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, pool *limiterPool, rl config.RateLimitConfig) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Pipeline control gets the conservative budget; start and stop are
	// heavyweight operations
	pipelineGroup := v1.Group("/pipeline")
	pipelineGroup.Use(PerClientRateLimit(pool, rl.ControlRPS, rl.ControlBurst))
	pipeline.RegisterRoutes(pipelineGroup, deps)

	// History reads get the general budget
	transcriptionsGroup := v1.Group("/transcriptions")
	transcriptionsGroup.Use(PerClientRateLimit(pool, rl.QueryRPS, rl.QueryBurst))
	transcriptions.RegisterRoutes(transcriptionsGroup, deps)

	// Register the websocket feed; upgrade requests bypass rate limiting
	if deps.Live != nil {
		live.RegisterRoutes(v1, deps.Live)
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
