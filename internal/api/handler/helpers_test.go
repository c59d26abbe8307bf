package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/middleware"
	"github.com/leadvault/crm-api/internal/core/domain"
)

var testIdentity = domain.Identity{UserID: "user-1", TenantID: "tenant-1", TokenID: "jti-1"}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuthedContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newContext(method, target, body)
	middleware.SetIdentity(c, testIdentity)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
}

func assertStatusError(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected %d, got %d", want, he.Code)
	}
}

func assertValidationError(t *testing.T, err error, msg string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if msg != "" && ve.Error() != msg {
		t.Fatalf("expected %q, got %q", msg, ve.Error())
	}
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
