package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Live Translator API",
			"version":     "1.0.0",
			"description": "Real-time transcription and translation of live streams",
			"status":      "running",
		})
	}
}
