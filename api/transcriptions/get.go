package transcriptions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
	"github.com/streamlex/live-translator/pkg/errors"
)

// Get returns stored transcription results, newest first. An optional
// session_id query parameter narrows the listing to one session.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.History == nil {
			appErr := errors.New(errors.ErrCodeNotFound, "transcription history is disabled")
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		if sessionID := c.Query("session_id"); sessionID != "" {
			records, err := deps.History.ListBySession(c.Request.Context(), sessionID)
			if err != nil {
				appErr := errors.Wrap(err, errors.ErrCodeInternal, "failed to list transcriptions")
				c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
				return
			}
			c.JSON(http.StatusOK, gin.H{"transcriptions": records, "count": len(records)})
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				appErr := errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer")
				c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
				return
			}
			limit = parsed
		}

		records, err := deps.History.ListRecent(c.Request.Context(), limit)
		if err != nil {
			appErr := errors.Wrap(err, errors.ErrCodeInternal, "failed to list transcriptions")
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		c.JSON(http.StatusOK, gin.H{"transcriptions": records, "count": len(records)})
	}
}
