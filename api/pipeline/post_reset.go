package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// PostResetStats zeroes the statistics counters
func PostResetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Pipeline.ResetStats()
		c.JSON(http.StatusOK, types.StatusResponse{Status: "reset"})
	}
}
