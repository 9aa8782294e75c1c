package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/core/service"
)

// SectionHandler exposes the instance's active section. The section state is
// per-process, like the session store; activation is role-checked against the
// caller's navigation.
type SectionHandler struct {
	router *service.ViewRouter
}

func NewSectionHandler(router *service.ViewRouter) *SectionHandler {
	return &SectionHandler{router: router}
}

type sectionResponse struct {
	Active string `json:"active"`
}

// Active returns the currently active section id.
//
// @Summary      Current active section
// @Tags         sections
// @Produce      json
// @Success      200  {object}  sectionResponse
// @Router       /v1/sections [get]
func (h *SectionHandler) Active(c echo.Context) error {
	return c.JSON(http.StatusOK, sectionResponse{Active: h.router.Active()})
}

// Activate switches the active section. Unknown sections are rejected;
// switching to the market section triggers the one-time listings fetch.
//
// @Summary      Activate a section
// @Tags         sections
// @Produce      json
// @Param        id  path  string  true  "Section id"
// @Success      200  {object}  sectionResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/sections/{id} [put]
func (h *SectionHandler) Activate(c echo.Context) error {
	id := c.Param("id")
	if !h.router.Activate(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown section")
	}
	return c.JSON(http.StatusOK, sectionResponse{Active: h.router.Active()})
}
