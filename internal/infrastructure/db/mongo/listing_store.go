package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

const collectionListings = "listings"

// ListingStore implements ports.ListingStore on a MongoDB collection.
type ListingStore struct {
	col *mongo.Collection
}

func NewListingStore(db *mongo.Database) *ListingStore {
	return &ListingStore{col: db.Collection(collectionListings)}
}

// SelectAll returns every listing row ordered by creation time, newest first.
func (r *ListingStore) SelectAll(ctx context.Context) ([]ports.ListingRow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	rows := []ports.ListingRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert stores a new row. The store assigns the id, mirroring a hosted data
// service where ids are server-generated.
func (r *ListingStore) Insert(ctx context.Context, row ports.ListingRow) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if row.ID == "" {
		row.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, row)
	return err
}

// Update applies patch to the row with the given id. A non-empty ownerID is
// re-asserted in the filter so a bypassed client-side check still cannot
// mutate another owner's record. The owner column is never written.
func (r *ListingStore) Update(ctx context.Context, id string, patch ports.ListingPatch, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	set := bson.M{
		"title":       patch.Title,
		"price":       patch.Price,
		"area":        patch.Area,
		"location":    patch.Location,
		"type":        patch.Type,
		"status":      patch.Status,
		"image_url":   patch.ImageURL,
		"bedrooms":    patch.Bedrooms,
		"bathrooms":   patch.Bathrooms,
		"finishing":   patch.Finishing,
		"description": patch.Description,
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Delete removes the row with the given id, owner-filtered like Update.
func (r *ListingStore) Delete(ctx context.Context, id string, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (r *ListingStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
