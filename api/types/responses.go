package types

import "github.com/streamlex/live-translator/pkg/errors"

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse converts an AppError into a response body.
func NewErrorResponse(err *errors.AppError) ErrorResponse {
	return ErrorResponse{
		Code:    err.Code,
		Message: err.Message,
		Details: err.Details,
	}
}

// StatusResponse is a simple acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}
