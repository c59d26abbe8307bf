package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type stubAuthorizer struct {
	granted map[string]bool
	err     error
}

func (s stubAuthorizer) HasPermission(_ context.Context, _ domain.Identity, permission string) (bool, error) {
	return s.granted[permission], s.err
}

func newPermissionContext(withIdentity bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if withIdentity {
		SetIdentity(c, domain.Identity{UserID: "u-1", TenantID: "t-1"})
	}
	return c, rec
}

func TestRequirePermission_Allowed(t *testing.T) {
	authz := stubAuthorizer{granted: map[string]bool{domain.PermLeadView: true}}
	c, rec := newPermissionContext(true)

	h := RequirePermission(authz, domain.PermLeadView)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_Denied(t *testing.T) {
	authz := stubAuthorizer{granted: map[string]bool{domain.PermLeadView: true}}
	c, _ := newPermissionContext(true)

	err := RequirePermission(authz, domain.PermLeadCreate)(mustNotReach(t))(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequirePermission_NoIdentity(t *testing.T) {
	c, _ := newPermissionContext(false)

	err := RequirePermission(stubAuthorizer{}, domain.PermLeadView)(mustNotReach(t))(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequirePermission_LookupError(t *testing.T) {
	boom := errors.New("db down")
	c, _ := newPermissionContext(true)

	err := RequirePermission(stubAuthorizer{err: boom}, domain.PermLeadView)(mustNotReach(t))(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
