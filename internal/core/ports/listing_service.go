package ports

import (
	"context"
	"io"

	"github.com/royalestate/realty-platform/internal/core/domain"
)

// Mode tags whether the listing service talks to a real backend or serves the
// built-in sample set. It is resolved once at construction; call sites never
// re-derive backend availability.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSimulated Mode = "simulated"
)

// ListingInput carries the fields a user submits when creating or editing a
// listing. Numerics are already parsed; the transport layer owns string
// coercion of form values.
type ListingInput struct {
	Title        string
	Price        float64
	Area         float64
	Location     string
	PropertyType string
	DealType     string
	ImageURL     string
	Bedrooms     int
	Bathrooms    int
	Finishing    string
	Description  string
}

// UploadResult is returned after a successful image upload.
type UploadResult struct {
	Key       string
	PublicURL string
}

// ListingService mediates all reads and writes of listings against the remote
// store and keeps the local read cache.
type ListingService interface {
	Mode() Mode
	// FetchAll refreshes and returns the cache. It never returns an error:
	// read failures degrade to an empty cache.
	FetchAll(ctx context.Context) []domain.Listing
	// Cached returns the current cache snapshot without a remote call.
	Cached() []domain.Listing
	// FetchedOnce reports whether any fetch has completed this session.
	FetchedOnce() bool
	Create(ctx context.Context, identity *domain.Identity, input ListingInput) error
	Update(ctx context.Context, identity *domain.Identity, id string, input ListingInput) error
	// Delete refuses without explicit confirmation and in simulated mode.
	Delete(ctx context.Context, identity *domain.Identity, id string, confirmed bool) error
	UploadImage(ctx context.Context, identity *domain.Identity, filename, contentType string, r io.Reader) (*UploadResult, error)
}
