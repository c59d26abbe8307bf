package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/middleware"
	"github.com/leadvault/crm-api/internal/core/domain"
)

// callerIdentity returns the identity stored by the Auth middleware. Its
// absence means the route was mounted without Auth, which is reported as 401.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return identity, nil
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}
