package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// errorResponse is the canonical error envelope for all 4xx/5xx responses.
type errorResponse struct {
	Status  int                 `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Field   string              `json:"field,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns the single translation stage between internal
// failures and the wire contract:
//   - Structured validation failures → 400 VALIDATION_ERROR with the full
//     field error list.
//   - Domain sentinels → their deterministic HTTP codes, code "ERROR".
//   - Storage uniqueness violations → 409 CONFLICT with the offending field
//     when it could be extracted.
//   - Everything else → 500 INTERNAL_ERROR; the real cause is logged and,
//     outside production, attached as detail.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c, production)
		_ = c.JSON(resp.Status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) errorResponse {
	// Validation failures carry the complete per-field error list.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errorResponse{
			Status:  http.StatusBadRequest,
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Errors:  ve.Fields,
		}
	}

	// Storage uniqueness violations, normalized by the repositories.
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return errorResponse{
			Status:  http.StatusConflict,
			Code:    "CONFLICT",
			Message: "Duplicate entry",
			Field:   conflict.Field,
		}
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{
			Status:  he.Code,
			Code:    "ERROR",
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return domainError(http.StatusNotFound, "Shipment not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return domainError(http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrCompanyNotFound):
		return domainError(http.StatusNotFound, "Company not found")
	case errors.Is(err, domain.ErrForbidden):
		return domainError(http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return domainError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidRole):
		return domainError(http.StatusBadRequest, "Invalid role")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	resp := errorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal Server Error",
	}
	if !production {
		resp.Detail = err.Error()
	}
	return resp
}

func domainError(status int, message string) errorResponse {
	return errorResponse{Status: status, Code: "ERROR", Message: message}
}
