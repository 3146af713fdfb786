package handler

import (
	"net/http"
	"time"

	"bookhub/internal/api/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload shared by every endpoint.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Status    int            `json:"status"`
	Path      string         `json:"path"`
	Timestamp time.Time      `json:"timestamp"`
	Args      map[string]any `json:"args,omitempty"`
}

// writeError renders a domain failure with its mapped status; anything
// outside the taxonomy is a generic 500 with no internals leaked.
func writeError(c *gin.Context, err error) {
	if code := apperr.CodeOf(err); code != "" {
		status := apperr.Status(code)
		c.JSON(status, ErrorResponse{
			Code:      string(code),
			Message:   err.Error(),
			Status:    status,
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
			Args:      apperr.ArgsOf(err),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:      "INTERNAL_SERVER_ERROR",
		Message:   "internal server error",
		Status:    http.StatusInternalServerError,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
