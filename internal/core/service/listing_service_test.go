package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubListingStore struct {
	rows      []ports.ListingRow
	nextID    int
	selectErr error
	calls     int // total mutation + select calls issued
}

func newStubListingStore() *stubListingStore {
	return &stubListingStore{nextID: 1}
}

func (s *stubListingStore) SelectAll(_ context.Context) ([]ports.ListingRow, error) {
	s.calls++
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	// newest first, mirroring the real store's created_at desc ordering
	out := append([]ports.ListingRow(nil), s.rows...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *stubListingStore) Insert(_ context.Context, row ports.ListingRow) error {
	s.calls++
	row.ID = fmt.Sprintf("%d", s.nextID)
	s.nextID++
	s.rows = append(s.rows, row)
	return nil
}

// Update enforces the owner filter exactly like the real store: a non-empty
// ownerID that does not match leaves the row untouched.
func (s *stubListingStore) Update(_ context.Context, id string, patch ports.ListingPatch, ownerID string) error {
	s.calls++
	for i, row := range s.rows {
		if row.ID != id {
			continue
		}
		if ownerID != "" && row.OwnerID != ownerID {
			return domain.ErrListingNotFound
		}
		row.Title = patch.Title
		row.Price = patch.Price
		row.Area = patch.Area
		row.Location = patch.Location
		row.Type = patch.Type
		row.Status = patch.Status
		row.ImageURL = patch.ImageURL
		row.Bedrooms = patch.Bedrooms
		row.Bathrooms = patch.Bathrooms
		row.Finishing = patch.Finishing
		row.Description = patch.Description
		s.rows[i] = row
		return nil
	}
	return domain.ErrListingNotFound
}

func (s *stubListingStore) Delete(_ context.Context, id string, ownerID string) error {
	s.calls++
	for i, row := range s.rows {
		if row.ID != id {
			continue
		}
		if ownerID != "" && row.OwnerID != ownerID {
			return domain.ErrListingNotFound
		}
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
		return nil
	}
	return domain.ErrListingNotFound
}

type stubObjectStore struct {
	uploadErr error
	lastKey   string
}

func (s *stubObjectStore) Upload(_ context.Context, _, key, _ string, r io.Reader) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.lastKey = key
	_, _ = io.Copy(io.Discard, r)
	return nil
}

func (s *stubObjectStore) PublicURL(bucket, key string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + key
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func broker(id string) *domain.Identity {
	return &domain.Identity{ID: id, DisplayName: "وسيط", Role: domain.RoleBroker}
}

func superAdmin() *domain.Identity {
	return &domain.Identity{ID: "admin_1", DisplayName: "مدير", Role: domain.RoleSuperAdmin}
}

func minimalInput(title string) ports.ListingInput {
	return ports.ListingInput{
		Title:        title,
		Price:        100,
		Area:         50,
		Location:     "القاهرة الجديدة",
		PropertyType: "apartment",
		DealType:     "sale",
		Bedrooms:     2,
		Bathrooms:    1,
		Finishing:    "سوبر لوكس",
	}
}

// ---------------------------------------------------------------------------
// FetchAll
// ---------------------------------------------------------------------------

func TestFetchAll_ReplacesCacheWholesale(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	owner := broker("broker_1")

	if err := svc.Create(context.Background(), owner, minimalInput("A")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Create(context.Background(), owner, minimalInput("B")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listings := svc.FetchAll(context.Background())
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	// newest first
	if listings[0].Title != "B" || listings[1].Title != "A" {
		t.Errorf("expected newest-first order, got %q then %q", listings[0].Title, listings[1].Title)
	}
	if !svc.FetchedOnce() {
		t.Error("FetchedOnce must be true after a completed fetch")
	}
}

func TestFetchAll_TransportErrorDegradesToEmpty(t *testing.T) {
	store := newStubListingStore()
	store.rows = []ports.ListingRow{{ID: "1", Title: "stale"}}
	svc := NewListingService(store, nil, "properties", discardLogger)

	svc.FetchAll(context.Background())
	if len(svc.Cached()) != 1 {
		t.Fatalf("expected 1 cached listing before failure")
	}

	store.selectErr = errors.New("connection refused")
	listings := svc.FetchAll(context.Background())
	if len(listings) != 0 {
		t.Errorf("expected empty result on transport error, got %d", len(listings))
	}
	if len(svc.Cached()) != 0 {
		t.Errorf("cache must be emptied, not left stale or partial")
	}
}

func TestFetchAll_SimulatedModeServesSamples(t *testing.T) {
	svc := NewListingService(nil, nil, "properties", discardLogger)

	if svc.Mode() != ports.ModeSimulated {
		t.Fatalf("expected simulated mode, got %s", svc.Mode())
	}
	listings := svc.FetchAll(context.Background())
	if len(listings) != len(SampleListings()) {
		t.Errorf("expected %d sample listings, got %d", len(SampleListings()), len(listings))
	}
}

func TestFetchAll_CoercesNumericStrings(t *testing.T) {
	store := newStubListingStore()
	store.rows = []ports.ListingRow{{
		ID:        "1",
		Title:     "A",
		Price:     "100",
		Area:      "50",
		Bedrooms:  "2",
		Bathrooms: int32(1),
		Type:      "apartment",
		Status:    "sale",
	}}
	svc := NewListingService(store, nil, "properties", discardLogger)

	listings := svc.FetchAll(context.Background())
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	l := listings[0]
	if l.Price != 100 {
		t.Errorf("price: expected 100, got %v", l.Price)
	}
	if l.Area != 50 {
		t.Errorf("area: expected 50, got %v", l.Area)
	}
	if l.Bedrooms != 2 || l.Bathrooms != 1 {
		t.Errorf("rooms: expected 2/1, got %d/%d", l.Bedrooms, l.Bathrooms)
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_Unauthenticated_NoCalls(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)

	err := svc.Create(context.Background(), nil, minimalInput("A"))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("expected zero store calls, got %d", store.calls)
	}
}

func TestCreate_GuestRejected(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)

	err := svc.Create(context.Background(), domain.GuestIdentity(), minimalInput("A"))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for guest, got %v", err)
	}
}

func TestCreate_AttachesOwner(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)

	if err := svc.Create(context.Background(), broker("broker_7"), minimalInput("A")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if store.rows[0].OwnerID != "broker_7" {
		t.Errorf("expected owner_id broker_7, got %q", store.rows[0].OwnerID)
	}
	if store.rows[0].CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
}

func TestCreate_RoundTripNumbers(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)

	input := ports.ListingInput{
		Title: "A", Price: 100, Area: 50, Location: "x",
		PropertyType: "apartment", DealType: "sale",
		Bedrooms: 2, Bathrooms: 1,
	}
	if err := svc.Create(context.Background(), broker("b1"), input); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listings := svc.FetchAll(context.Background())
	if listings[0].Price != 100 || listings[0].Area != 50 {
		t.Errorf("round-trip lost numerics: price=%v area=%v", listings[0].Price, listings[0].Area)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := NewListingService(newStubListingStore(), nil, "properties", discardLogger)

	cases := []struct {
		name string
		mut  func(*ports.ListingInput)
	}{
		{"missing title", func(in *ports.ListingInput) { in.Title = "" }},
		{"missing location", func(in *ports.ListingInput) { in.Location = "" }},
		{"negative price", func(in *ports.ListingInput) { in.Price = -1 }},
		{"zero area", func(in *ports.ListingInput) { in.Area = 0 }},
		{"negative bedrooms", func(in *ports.ListingInput) { in.Bedrooms = -1 }},
		{"bad type", func(in *ports.ListingInput) { in.PropertyType = "castle" }},
		{"bad deal", func(in *ports.ListingInput) { in.DealType = "lease" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := minimalInput("A")
			tc.mut(&input)
			err := svc.Create(context.Background(), broker("b1"), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreate_SimulatedModeAcknowledgesWithoutPersisting(t *testing.T) {
	svc := NewListingService(nil, nil, "properties", discardLogger)

	if err := svc.Create(context.Background(), broker("b1"), minimalInput("A")); err != nil {
		t.Fatalf("simulated create must succeed, got %v", err)
	}
	// the sample set is unchanged
	if n := len(svc.FetchAll(context.Background())); n != len(SampleListings()) {
		t.Errorf("simulated create must not persist, got %d listings", n)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func seedListing(t *testing.T, svc *ListingService, store *stubListingStore, owner *domain.Identity) string {
	t.Helper()
	if err := svc.Create(context.Background(), owner, minimalInput("A")); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	svc.FetchAll(context.Background())
	return store.rows[0].ID
}

func TestUpdate_NonOwnerRejectedClientSide(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	id := seedListing(t, svc, store, broker("owner_1"))

	calls := store.calls
	err := svc.Update(context.Background(), broker("intruder"), id, minimalInput("hijacked"))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.calls != calls {
		t.Errorf("client-side rejection must issue zero store calls")
	}
	if store.rows[0].Title != "A" {
		t.Errorf("remote record must be unchanged, got title %q", store.rows[0].Title)
	}
}

// Even with the client-side check bypassed (record not in cache), the remote
// owner filter must keep a non-owner from mutating the record.
func TestUpdate_OwnerFilterBlocksBypass(t *testing.T) {
	store := newStubListingStore()
	store.rows = []ports.ListingRow{{ID: "77", Title: "A", OwnerID: "owner_1"}}
	svc := NewListingService(store, nil, "properties", discardLogger)
	// no FetchAll: cache is empty, so the client-side check cannot fire

	err := svc.Update(context.Background(), broker("intruder"), "77", minimalInput("hijacked"))
	if err == nil {
		t.Fatal("expected remote rejection")
	}

	listings := svc.FetchAll(context.Background())
	if listings[0].Title != "A" {
		t.Errorf("record mutated despite owner filter: %q", listings[0].Title)
	}
}

func TestUpdate_OwnerSucceeds(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	owner := broker("owner_1")
	id := seedListing(t, svc, store, owner)

	input := minimalInput("Renamed")
	if err := svc.Update(context.Background(), owner, id, input); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if store.rows[0].Title != "Renamed" {
		t.Errorf("expected updated title, got %q", store.rows[0].Title)
	}
	if store.rows[0].OwnerID != "owner_1" {
		t.Errorf("owner_id must never change on update, got %q", store.rows[0].OwnerID)
	}
}

func TestUpdate_SuperAdminBypassesOwnerFilter(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	id := seedListing(t, svc, store, broker("owner_1"))

	if err := svc.Update(context.Background(), superAdmin(), id, minimalInput("Admin edit")); err != nil {
		t.Fatalf("super admin update failed: %v", err)
	}
	if store.rows[0].Title != "Admin edit" {
		t.Errorf("expected admin edit applied, got %q", store.rows[0].Title)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete_WithoutConfirmation_NoCalls(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	id := seedListing(t, svc, store, broker("owner_1"))

	calls := store.calls
	err := svc.Delete(context.Background(), broker("owner_1"), id, false)
	if !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if store.calls != calls {
		t.Errorf("unconfirmed delete must issue zero calls, got %d extra", store.calls-calls)
	}
}

func TestDelete_SimulatedModeRefused(t *testing.T) {
	svc := NewListingService(nil, nil, "properties", discardLogger)

	err := svc.Delete(context.Background(), broker("b1"), "1", true)
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestDelete_RemovesExactlyOneAndRefreshes(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	owner := broker("owner_1")
	if err := svc.Create(context.Background(), owner, minimalInput("A")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(context.Background(), owner, minimalInput("B")); err != nil {
		t.Fatal(err)
	}
	svc.FetchAll(context.Background())
	id := store.rows[0].ID

	if err := svc.Delete(context.Background(), owner, id, true); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one record removed, %d remain", len(store.rows))
	}
	// delete refreshes the cache itself
	if len(svc.Cached()) != 1 {
		t.Errorf("cache not refreshed after delete: %d entries", len(svc.Cached()))
	}
}

func TestDelete_NonOwnerRejected(t *testing.T) {
	store := newStubListingStore()
	svc := NewListingService(store, nil, "properties", discardLogger)
	id := seedListing(t, svc, store, broker("owner_1"))

	err := svc.Delete(context.Background(), broker("intruder"), id, true)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(store.rows) != 1 {
		t.Errorf("record must survive a non-owner delete")
	}
}

// ---------------------------------------------------------------------------
// UploadImage
// ---------------------------------------------------------------------------

var objectKeyPattern = regexp.MustCompile(`^\d{13}-[0-9a-f]{8}\.jpg$`)

func TestUploadImage_KeyFormatAndURL(t *testing.T) {
	objects := &stubObjectStore{}
	svc := NewListingService(newStubListingStore(), objects, "properties", discardLogger)

	res, err := svc.UploadImage(context.Background(), broker("b1"), "villa.jpg", "image/jpeg", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !objectKeyPattern.MatchString(res.Key) {
		t.Errorf("key %q does not match <millis>-<suffix>.jpg", res.Key)
	}
	if res.PublicURL != "https://storage.googleapis.com/properties/"+res.Key {
		t.Errorf("unexpected public URL %q", res.PublicURL)
	}
}

func TestUploadImage_FailureCarriesBucketHint(t *testing.T) {
	objects := &stubObjectStore{uploadErr: errors.New("403 forbidden")}
	svc := NewListingService(newStubListingStore(), objects, "properties", discardLogger)

	_, err := svc.UploadImage(context.Background(), broker("b1"), "villa.jpg", "image/jpeg", strings.NewReader("data"))
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "must exist and be public") {
		t.Errorf("error must carry the bucket remediation hint, got %q", err.Error())
	}
}

func TestUploadImage_NoObjectStore(t *testing.T) {
	svc := NewListingService(newStubListingStore(), nil, "properties", discardLogger)

	_, err := svc.UploadImage(context.Background(), broker("b1"), "a.png", "image/png", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestObjectKey_UsesExtension(t *testing.T) {
	key := objectKey("صورة.PNG")
	if !strings.HasSuffix(key, ".PNG") {
		t.Errorf("key must keep the original extension, got %q", key)
	}
	millis := strings.SplitN(key, "-", 2)[0]
	if _, err := time.ParseDuration(millis + "ms"); err != nil {
		t.Errorf("key prefix must be a millisecond timestamp, got %q", millis)
	}
}
