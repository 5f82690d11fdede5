package handlers

import (
	"context"
	"errors"
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, fields map[string]string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Fields:    fields,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		verr domain.ValidationError
		up   domain.UpstreamError
	)
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.FieldMessages())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", notFoundMessage(err), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &up):
		utils.LogEvent(middleware.GetRequestID(c), "http", "upstream_error", err.Error())
		status := http.StatusBadGateway
		if up.Status == 0 {
			status = http.StatusServiceUnavailable
		}
		respondError(c, status, "upstream_error", "the back-office service is unavailable, please retry", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, "timeout", "the back-office service timed out", nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// notFoundMessage prefers the upstream's own wording.
func notFoundMessage(err error) string {
	var nf domain.NotFoundError
	if errors.As(err, &nf) && nf.Resource == "" && nf.Err != nil {
		return nf.Err.Error()
	}
	return err.Error()
}
