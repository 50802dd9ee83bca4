package transcriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// RegisterRoutes registers transcription history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/transcriptions - List stored results
	router.GET("", Get(deps))
}
