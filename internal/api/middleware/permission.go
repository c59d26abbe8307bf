package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/metrics"
	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// RequirePermission rejects callers whose role lacks permission. It must run
// after Auth.
func RequirePermission(authz ports.Authorizer, permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrForbidden
			}

			allowed, err := authz.HasPermission(c.Request().Context(), identity, permission)
			if err != nil {
				return err
			}
			if !allowed {
				metrics.PermissionDeniedTotal.WithLabelValues(permission).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
