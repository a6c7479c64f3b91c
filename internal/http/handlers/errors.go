package handlers

import (
	"net/http"

	"dashboard/internal/domain"
	"dashboard/internal/http/middleware"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: requestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "source_unavailable", err.Error(), nil)
	default:
		utils.LogError(requestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
