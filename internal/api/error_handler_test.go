package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.MissingFields("fileName", "filePath"), http.StatusBadRequest, "fileName and filePath required"},
		{"wrapped validation", fmt.Errorf("create: %w", domain.MissingFields("importId")), http.StatusBadRequest, "importId required"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"invalid token", domain.ErrInvalidToken, http.StatusForbidden, "invalid or expired token"},
		{"expired token", domain.ErrExpiredToken, http.StatusForbidden, "invalid or expired token"},
		{"revoked token", domain.ErrTokenRevoked, http.StatusForbidden, "invalid or expired token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"import missing", fmt.Errorf("find: %w", domain.ErrImportNotFound), http.StatusNotFound, "import not found"},
		{"lead missing", domain.ErrLeadNotFound, http.StatusNotFound, "lead not found"},
		{"conflict", domain.ErrUserExists, http.StatusConflict, "email already exists"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_LogsUnexpected(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/imports", nil), httptest.NewRecorder())
	NewHTTPErrorHandler(log)(errors.New("disk full"), c)

	if !bytes.Contains(buf.Bytes(), []byte("disk full")) {
		t.Fatalf("expected cause in log, got %s", buf.String())
	}
}

func TestHTTPErrorHandler_SkipsCommitted(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrLeadNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
