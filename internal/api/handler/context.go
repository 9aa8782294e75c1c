package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/core/domain"
)

// ctxIdentity rebuilds the caller's identity from the claims injected by the
// Auth middleware and performs a fast-fail check before any service call:
// a missing role proves the middleware did not run, so reject with 401.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if domain.Role(role) == domain.RoleGuest || userID == domain.GuestID {
		return domain.GuestIdentity(), nil
	}
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return &domain.Identity{
		ID:   userID,
		Role: domain.ParseRole(role),
	}, nil
}
