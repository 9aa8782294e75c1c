package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/api/metrics"
	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
	"github.com/royalestate/realty-platform/internal/core/service"
)

// ListingHandler handles HTTP requests for listing operations. Mutations run
// through a submission machine: an in-flight upload blocks submits, a running
// submit blocks uploads, and a successful submit schedules a cache refresh.
type ListingHandler struct {
	service    ports.ListingService
	submission *service.Submission
}

func NewListingHandler(svc ports.ListingService) *ListingHandler {
	return NewListingHandlerWithDelay(svc, 0)
}

// NewListingHandlerWithDelay overrides the post-success hold before the
// machine returns to idle and refreshes the cache.
func NewListingHandlerWithDelay(svc ports.ListingService, successDelay time.Duration) *ListingHandler {
	refresh := func() { svc.FetchAll(context.Background()) }
	return &ListingHandler{
		service:    svc,
		submission: service.NewSubmission(refresh, successDelay),
	}
}

// List returns all listings, newest first. Read failures degrade to an empty
// list rather than an error so browsing always renders something.
//
// @Summary      List all property listings
// @Tags         listings
// @Produce      json
// @Success      200  {object}  listingsResponse
// @Router       /v1/listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	listings := h.service.FetchAll(c.Request().Context())
	metrics.ListingFetchesTotal.WithLabelValues(string(h.service.Mode())).Inc()
	return c.JSON(http.StatusOK, listingsResponse{Mode: h.service.Mode(), Listings: listings})
}

// Create inserts a new listing owned by the caller.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        body  body      listingRequest  true  "Listing fields"
// @Success      201
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	err = h.submission.Submit(c.Request().Context(), func(ctx context.Context) error {
		return h.service.Create(ctx, identity, input)
	})
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(input.PropertyType).Inc()
	return c.NoContent(http.StatusCreated)
}

// Update edits an existing listing. Only the owner (or a super admin) may
// edit; ownership is re-checked at the store, not just in the cache.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Listing id"
// @Param        body  body      listingRequest  true  "Listing fields"
// @Success      200
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	id := c.Param("id")
	err = h.submission.Submit(c.Request().Context(), func(ctx context.Context) error {
		return h.service.Update(ctx, identity, id, input)
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete removes a listing. The destructive path requires the caller to pass
// confirm=true explicitly; without it the request is refused.
//
// @Summary      Delete a listing
// @Tags         listings
// @Param        id       path   string  true   "Listing id"
// @Param        confirm  query  bool    false  "Must be true to proceed"
// @Success      204
// @Failure      403   {object}  map[string]string
// @Failure      428   {object}  map[string]string
// @Router       /v1/listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	confirmed := c.QueryParam("confirm") == "true"
	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id"), confirmed); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Upload stores a listing image and returns its public URL.
//
// @Summary      Upload a listing image
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  uploadResponse
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/uploads [post]
func (h *ListingHandler) Upload(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if !h.submission.BeginUpload() {
		return domain.ErrSubmissionBusy
	}
	defer h.submission.EndUpload()

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	result, err := h.service.UploadImage(c.Request().Context(), identity, fh.Filename, contentType, src)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, uploadResponse{Key: result.Key, PublicURL: result.PublicURL})
}
