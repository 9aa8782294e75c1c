package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/royalestate/realty-platform/internal/core/ports"
)

const collectionProfiles = "profiles"

// ProfileStore implements ports.ProfileStore and ports.ProfileWriter on the
// profiles collection. Profiles are keyed by the account id.
type ProfileStore struct {
	col *mongo.Collection
}

func NewProfileStore(db *mongo.Database) *ProfileStore {
	return &ProfileStore{col: db.Collection(collectionProfiles)}
}

type profileDoc struct {
	ID          string `bson:"_id"`
	FullName    string `bson:"full_name,omitempty"`
	Role        string `bson:"role,omitempty"`
	AvatarURL   string `bson:"avatar_url,omitempty"`
	CompanyName string `bson:"company_name,omitempty"`
}

// GetProfile returns the profile for userID, or (nil, nil) when no profile
// row exists — missing profiles are a normal condition handled by fallbacks.
func (r *ProfileStore) GetProfile(ctx context.Context, userID string) (*ports.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &ports.Profile{
		FullName:    doc.FullName,
		Role:        doc.Role,
		AvatarURL:   doc.AvatarURL,
		CompanyName: doc.CompanyName,
	}, nil
}

// CreateProfile writes the initial profile row for a new account.
func (r *ProfileStore) CreateProfile(ctx context.Context, userID string, profile ports.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, profileDoc{
		ID:          userID,
		FullName:    profile.FullName,
		Role:        profile.Role,
		AvatarURL:   profile.AvatarURL,
		CompanyName: profile.CompanyName,
	})
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}
