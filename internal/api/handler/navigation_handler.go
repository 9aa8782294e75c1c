package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/service"
)

// NavigationHandler serves the role-filtered navigation. It is a pure
// projection of the caller's role; nothing here mutates state.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type navigationResponse struct {
	Role    domain.Role              `json:"role"`
	Entries []domain.NavigationEntry `json:"entries"`
}

// Navigation returns the sections the caller's role is allowed to see, in
// canonical order. Guests get the guest projection; an unknown or absent
// role gets an empty list.
//
// @Summary      Role-filtered navigation entries
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Navigation(c echo.Context) error {
	role, _ := c.Get("role").(string)
	r := domain.Role(role)
	return c.JSON(http.StatusOK, navigationResponse{
		Role:    r,
		Entries: service.NavigationFor(r),
	})
}
