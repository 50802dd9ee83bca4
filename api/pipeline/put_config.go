package pipeline

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamlex/live-translator/api/types"
	"github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/pkg/errors"
)

// PutConfig applies a partial update to the processing configuration.
// Changes take effect for segments enqueued after this call.
func PutConfig(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update pipeline.ConfigUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			appErr := errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid configuration body")
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		if err := deps.Pipeline.Configure(update); err != nil {
			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) {
				appErr = errors.Wrap(err, errors.ErrCodeValidation, "configuration rejected")
			}
			c.JSON(appErr.GetHTTPCode(), types.NewErrorResponse(appErr))
			return
		}

		c.JSON(http.StatusOK, deps.Pipeline.Config())
	}
}
