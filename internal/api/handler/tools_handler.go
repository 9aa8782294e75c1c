package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/api/metrics"
	"github.com/royalestate/realty-platform/pkg/contract"
	"github.com/royalestate/realty-platform/pkg/watermark"
)

// ToolsHandler serves the broker toolbox: the contract template filler and
// the image watermarker. Both are stateless per invocation.
type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

type contractTemplateResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Placeholders []string `json:"placeholders"`
}

type renderContractRequest struct {
	TemplateID string            `json:"template_id" validate:"required"`
	Bindings   map[string]string `json:"bindings"`
}

type renderContractResponse struct {
	Document string `json:"document"`
}

// Templates lists the available contract templates and their placeholder
// slots so clients can build the fill-in form.
//
// @Summary      List contract templates
// @Tags         tools
// @Produce      json
// @Success      200  {array}  contractTemplateResponse
// @Router       /v1/tools/contracts [get]
func (h *ToolsHandler) Templates(c echo.Context) error {
	out := make([]contractTemplateResponse, 0, len(contract.DefaultTemplates))
	for _, t := range contract.DefaultTemplates {
		out = append(out, contractTemplateResponse{
			ID:           t.ID,
			Name:         t.Name,
			Placeholders: contract.Placeholders(t.Content),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// RenderContract fills a template with the supplied bindings. Bound values
// are HTML-escaped; unbound placeholders stay in the document.
//
// @Summary      Render a contract document
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        body  body      renderContractRequest  true  "Template id and bindings"
// @Success      200   {object}  renderContractResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/tools/contracts [post]
func (h *ToolsHandler) RenderContract(c echo.Context) error {
	var req renderContractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tpl, ok := contract.FindTemplate(req.TemplateID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown template")
	}

	metrics.ContractsRenderedTotal.WithLabelValues(tpl.ID).Inc()
	return c.JSON(http.StatusOK, renderContractResponse{
		Document: contract.Render(tpl.Content, req.Bindings),
	})
}

// Watermark composites the mark text onto the uploaded image and streams the
// result back as PNG.
//
// @Summary      Watermark a property photo
// @Tags         tools
// @Accept       multipart/form-data
// @Produce      image/png
// @Param        file  formData  file    true   "Source image (PNG or JPEG)"
// @Param        text  formData  string  false  "Mark text"
// @Success      200
// @Failure      400   {object}  map[string]string
// @Router       /v1/tools/watermark [post]
func (h *ToolsHandler) Watermark(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	text := c.FormValue("text")
	if text == "" {
		text = "المنصة العقارية"
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	// Composite into memory first so decode failures still return a clean
	// error response instead of a truncated body.
	var buf bytes.Buffer
	if err := watermark.ApplyPNG(&buf, src, text); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image")
	}

	metrics.WatermarksAppliedTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="watermarked-property.png"`)
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
