package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

func renderError(t *testing.T, err error, production bool) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), production)(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, resp
}

func TestErrorHandler_ValidationError(t *testing.T) {
	ve := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "username", Message: "Username must be at least 3 characters"},
		{Field: "email", Message: "Email must be a valid email address"},
	}}

	code, resp := renderError(t, ve, false)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Code != "VALIDATION_ERROR" || resp.Message != "Validation failed" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(resp.Errors))
	}
	if resp.Errors[0].Field != "username" {
		t.Fatalf("field error order lost: %+v", resp.Errors)
	}
}

func TestErrorHandler_Conflict(t *testing.T) {
	code, resp := renderError(t, &domain.ConflictError{Field: "username"}, false)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if resp.Code != "CONFLICT" || resp.Message != "Duplicate entry" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Field != "username" {
		t.Fatalf("expected offending field, got %q", resp.Field)
	}
}

func TestErrorHandler_DomainSentinels(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrShipmentNotFound, http.StatusNotFound, "Shipment not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrCompanyNotFound, http.StatusNotFound, "Company not found"},
		{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	}

	for _, c := range cases {
		code, resp := renderError(t, c.err, false)
		if code != c.status {
			t.Errorf("%v: expected %d, got %d", c.err, c.status, code)
		}
		if resp.Code != "ERROR" || resp.Message != c.message {
			t.Errorf("%v: unexpected envelope %+v", c.err, resp)
		}
	}
}

func TestErrorHandler_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("resolve shipment owner: %w", domain.ErrForbidden)
	code, resp := renderError(t, wrapped, false)
	if code != http.StatusForbidden || resp.Message != "Access denied" {
		t.Fatalf("wrapped sentinel not recognized: %d %+v", code, resp)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), false)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Code != "ERROR" || resp.Message != "invalid token" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	cause := errors.New("mongo: connection refused")

	code, resp := renderError(t, cause, false)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Code != "INTERNAL_ERROR" || resp.Message != "Internal Server Error" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Detail != cause.Error() {
		t.Fatalf("expected detail outside production, got %q", resp.Detail)
	}
}

func TestErrorHandler_ProductionHidesDetail(t *testing.T) {
	_, resp := renderError(t, errors.New("mongo: connection refused"), true)
	if resp.Detail != "" {
		t.Fatalf("production response leaked detail: %q", resp.Detail)
	}
	if resp.Message != "Internal Server Error" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
