package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
)

// PostStop handles requests to stop the running pipeline. Stopping an
// already stopped pipeline is not an error.
func PostStop(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Pipeline.Stop()

		c.JSON(http.StatusOK, gin.H{
			"status": "stopped",
			"state":  deps.Pipeline.State(),
		})
	}
}
