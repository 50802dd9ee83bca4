package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// GetStats returns the accumulated processing statistics
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Pipeline.Stats())
	}
}
