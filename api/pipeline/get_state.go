package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// GetState reports the current pipeline state and session
func GetState(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"state":      deps.Pipeline.State(),
			"session_id": deps.Pipeline.SessionID(),
			"config":     deps.Pipeline.Config(),
		})
	}
}
