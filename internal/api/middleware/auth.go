package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/metrics"
	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const identityKey = "identity"

// Auth resolves the bearer token into a domain.Identity and stores it on the
// context. A missing or malformed header is 401; a token that fails
// verification is 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokensRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokensRejectedTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				reason, known := rejectReason(err)
				if !known {
					return err
				}
				metrics.TokensRejectedTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			SetIdentity(c, *identity)
			return next(c)
		}
	}
}

func rejectReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired", true
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked", true
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid", true
	}
	return "", false
}

// SetIdentity attaches the caller identity to the request context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	if !ok || identity.UserID == "" || identity.TenantID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}
