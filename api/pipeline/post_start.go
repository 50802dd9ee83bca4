package pipeline

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
	pipe "github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/pkg/errors"
)

// StartRequest is the body for starting the pipeline.
type StartRequest struct {
	URL string `json:"url" binding:"required"`
}

// PostStart handles requests to start the pipeline against a stream URL
func PostStart(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.Wrap(err, errors.ErrCodeInvalidInput, "request body must include a stream url")
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		if err := deps.Pipeline.Start(c.Request.Context(), req.URL); err != nil {
			var appErr *errors.AppError
			switch {
			case stderrors.As(err, &appErr):
			case stderrors.Is(err, pipe.ErrBusy):
				appErr = errors.Wrap(err, errors.ErrCodePipelineBusy, "pipeline is already running")
			case stderrors.Is(err, pipe.ErrStreamNotLive):
				appErr = errors.Wrap(err, errors.ErrCodeStreamNotLive, "stream is not currently live")
			default:
				appErr = errors.Wrap(err, errors.ErrCodeStreamUnresolved, "failed to start pipeline")
			}
			appErr.WithDetail("url", req.URL)
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "started",
			"session_id": deps.Pipeline.SessionID(),
			"state":      deps.Pipeline.State(),
		})
	}
}
