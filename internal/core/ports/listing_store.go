package ports

import (
	"context"
	"io"
	"time"
)

// ListingRow is the remote table's record shape. Numeric columns are typed
// `any` on the read path because the transport may deliver them as strings or
// narrow integers; the service mapper coerces them.
type ListingRow struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Price       any       `bson:"price" json:"price"`
	Area        any       `bson:"area" json:"area"`
	Location    string    `bson:"location" json:"location"`
	Type        string    `bson:"type" json:"type"`
	Status      string    `bson:"status" json:"status"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	Bedrooms    any       `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   any       `bson:"bathrooms" json:"bathrooms"`
	Finishing   string    `bson:"finishing" json:"finishing"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID     string    `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ListingPatch carries the mutable listing fields for an update. The owner
// column is deliberately absent: ownership is set on insert and never changes.
type ListingPatch struct {
	Title       string
	Price       float64
	Area        float64
	Location    string
	Type        string
	Status      string
	ImageURL    string
	Bedrooms    int
	Bathrooms   int
	Finishing   string
	Description string
}

// ListingStore is the remote listings table contract.
type ListingStore interface {
	// SelectAll returns all rows ordered by creation time, newest first.
	SelectAll(ctx context.Context) ([]ListingRow, error)
	Insert(ctx context.Context, row ListingRow) error
	// Update applies patch to the row with the given id. When ownerID is
	// non-empty the filter additionally re-asserts owner_id, so a client-side
	// bypass cannot mutate another owner's record.
	Update(ctx context.Context, id string, patch ListingPatch, ownerID string) error
	// Delete removes the row with the given id, owner-filtered like Update.
	Delete(ctx context.Context, id string, ownerID string) error
}

// ObjectStore is the external object storage contract used for listing images.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error
	PublicURL(bucket, key string) string
}
