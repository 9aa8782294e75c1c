package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// placeholderImage is substituted when a listing is saved without an image.
const placeholderImage = "https://picsum.photos/800/600"

// ListingService keeps a local read cache of listings synchronized with the
// remote store and mediates all mutations. The cache is never authoritative:
// every successful mutation is followed by a full refresh rather than a local
// splice. It implements ports.ListingService.
type ListingService struct {
	store   ports.ListingStore // nil selects simulated mode
	objects ports.ObjectStore  // nil means uploads are unavailable
	bucket  string
	log     zerolog.Logger

	mu          sync.Mutex
	cache       []domain.Listing
	fetchedOnce bool
}

func NewListingService(store ports.ListingStore, objects ports.ObjectStore, bucket string, log zerolog.Logger) *ListingService {
	return &ListingService{store: store, objects: objects, bucket: bucket, log: log}
}

// Mode reports live or simulated operation, resolved once at construction.
func (s *ListingService) Mode() ports.Mode {
	if s.store == nil {
		return ports.ModeSimulated
	}
	return ports.ModeLive
}

// FetchAll refreshes the cache from the remote store, newest first, and
// returns the new snapshot. Any transport or query error is logged and
// degrades to an empty cache — it is never surfaced to the caller. Each
// completed fetch replaces the cache wholesale (last writer wins).
func (s *ListingService) FetchAll(ctx context.Context) []domain.Listing {
	if s.store == nil {
		return s.replaceCache(SampleListings())
	}

	rows, err := s.store.SelectAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch listings")
		return s.replaceCache([]domain.Listing{})
	}

	listings := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, rowToListing(row))
	}
	return s.replaceCache(listings)
}

// Cached returns the current cache snapshot without touching the network.
func (s *ListingService) Cached() []domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Listing(nil), s.cache...)
}

// FetchedOnce reports whether any fetch has completed this session.
func (s *ListingService) FetchedOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchedOnce
}

// Create inserts a new listing owned by the identity. The cache is not
// spliced locally; the caller refreshes after success. In simulated mode the
// call reports success without persisting anything.
func (s *ListingService) Create(ctx context.Context, identity *domain.Identity, input ports.ListingInput) error {
	if identity == nil || identity.IsGuest() {
		return domain.ErrUnauthenticated
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if s.store == nil {
		s.log.Info().Str("title", input.Title).Msg("simulated mode: create acknowledged without persistence")
		return nil
	}

	row := inputToRow(input)
	row.OwnerID = identity.ID
	row.CreatedAt = time.Now().UTC()

	if err := s.store.Insert(ctx, row); err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to create listing")
		return fmt.Errorf("create listing: %w", err)
	}

	s.log.Info().Str("title", input.Title).Str("owner_id", identity.ID).Msg("listing created")
	return nil
}

// Update mutates an existing listing. Only the owner or a SUPER_ADMIN may
// update, and the remote call re-asserts ownership in its filter so a
// client-side bypass cannot mutate another owner's record. The owner column
// itself is never part of the patch.
func (s *ListingService) Update(ctx context.Context, identity *domain.Identity, id string, input ports.ListingInput) error {
	if identity == nil || identity.IsGuest() {
		return domain.ErrUnauthenticated
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if err := s.authorizeMutation(identity, id); err != nil {
		return err
	}
	if s.store == nil {
		s.log.Info().Str("id", id).Msg("simulated mode: update acknowledged without persistence")
		return nil
	}

	if err := s.store.Update(ctx, id, inputToPatch(input), s.ownerFilter(identity)); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update listing")
		return fmt.Errorf("update listing %s: %w", id, err)
	}

	s.log.Info().Str("id", id).Str("by", identity.ID).Msg("listing updated")
	return nil
}

// Delete removes a listing. It refuses without explicit confirmation and
// refuses in simulated mode: destructive operations are never simulated.
// A successful delete immediately refreshes the cache.
func (s *ListingService) Delete(ctx context.Context, identity *domain.Identity, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if identity == nil || identity.IsGuest() {
		return domain.ErrUnauthenticated
	}
	if s.store == nil {
		return domain.ErrBackendUnavailable
	}
	if err := s.authorizeMutation(identity, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, s.ownerFilter(identity)); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete listing")
		return fmt.Errorf("delete listing %s: %w", id, err)
	}

	s.log.Info().Str("id", id).Str("by", identity.ID).Msg("listing deleted")
	s.FetchAll(ctx)
	return nil
}

// UploadImage streams the file to the object store under a collision-resistant
// key and resolves its public URL. Failures leave any local preview untouched;
// the error carries the remediation hint for the most common misconfiguration.
func (s *ListingService) UploadImage(ctx context.Context, identity *domain.Identity, filename, contentType string, r io.Reader) (*ports.UploadResult, error) {
	if identity == nil || identity.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	if s.objects == nil {
		return nil, domain.ErrBackendUnavailable
	}

	key := objectKey(filename)
	if err := s.objects.Upload(ctx, s.bucket, key, contentType, r); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return nil, fmt.Errorf("%w: bucket %q must exist and be public: %v", domain.ErrUploadFailed, s.bucket, err)
	}

	url := s.objects.PublicURL(s.bucket, key)
	s.log.Info().Str("key", key).Str("url", url).Msg("image uploaded")
	return &ports.UploadResult{Key: key, PublicURL: url}, nil
}

// authorizeMutation applies the client-side owner/admin check against the
// cached record. Records absent from the cache pass through; the remote owner
// filter remains the backstop.
func (s *ListingService) authorizeMutation(identity *domain.Identity, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.cache {
		if l.ID == id {
			if !identity.CanMutate(l.OwnerID) {
				return domain.ErrUnauthorized
			}
			return nil
		}
	}
	return nil
}

// ownerFilter is the owner_id the remote call must re-assert. SUPER_ADMIN
// writes filter by id alone.
func (s *ListingService) ownerFilter(identity *domain.Identity) string {
	if identity.Role == domain.RoleSuperAdmin {
		return ""
	}
	return identity.ID
}

func (s *ListingService) replaceCache(listings []domain.Listing) []domain.Listing {
	s.mu.Lock()
	s.cache = listings
	s.fetchedOnce = true
	snapshot := append([]domain.Listing(nil), s.cache...)
	s.mu.Unlock()
	return snapshot
}

// objectKey builds `<unix-millis>-<random-suffix><ext>` from the original
// file name's extension.
func objectKey(filename string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, path.Ext(filename))
}

func validateInput(in ports.ListingInput) error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case in.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case in.Area <= 0:
		return fmt.Errorf("%w: area must be positive", domain.ErrValidation)
	case in.Bedrooms < 0 || in.Bathrooms < 0:
		return fmt.Errorf("%w: bedrooms and bathrooms must not be negative", domain.ErrValidation)
	case !domain.PropertyType(in.PropertyType).IsValid():
		return fmt.Errorf("%w: unknown property type %q", domain.ErrValidation, in.PropertyType)
	case !domain.DealType(in.DealType).IsValid():
		return fmt.Errorf("%w: unknown deal type %q", domain.ErrValidation, in.DealType)
	}
	return nil
}

func inputToRow(in ports.ListingInput) ports.ListingRow {
	image := in.ImageURL
	if image == "" {
		image = placeholderImage
	}
	return ports.ListingRow{
		Title:       in.Title,
		Price:       in.Price,
		Area:        in.Area,
		Location:    in.Location,
		Type:        in.PropertyType,
		Status:      in.DealType,
		ImageURL:    image,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Finishing:   in.Finishing,
		Description: in.Description,
	}
}

func inputToPatch(in ports.ListingInput) ports.ListingPatch {
	image := in.ImageURL
	if image == "" {
		image = placeholderImage
	}
	return ports.ListingPatch{
		Title:       in.Title,
		Price:       in.Price,
		Area:        in.Area,
		Location:    in.Location,
		Type:        in.PropertyType,
		Status:      in.DealType,
		ImageURL:    image,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Finishing:   in.Finishing,
		Description: in.Description,
	}
}
