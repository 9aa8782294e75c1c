package domain

import "time"

// PropertyType classifies the kind of property a listing advertises.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeVilla      PropertyType = "villa"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

// DealType is whether a listing is offered for sale or for rent. It is stored
// under the wire column "status".
type DealType string

const (
	DealSale DealType = "sale"
	DealRent DealType = "rent"
)

// IsValid reports whether t is a known property type.
func (t PropertyType) IsValid() bool {
	switch t {
	case TypeApartment, TypeVilla, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// IsValid reports whether d is a known deal type.
func (d DealType) IsValid() bool {
	return d == DealSale || d == DealRent
}

// Listing is a property record, the central mutable entity of the system.
// Price, Area, Bedrooms and Bathrooms are always numeric internally even when
// the transport delivered them as strings.
type Listing struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Price        float64      `json:"price"`
	Area         float64      `json:"area"`
	Location     string       `json:"location"`
	PropertyType PropertyType `json:"property_type"`
	DealType     DealType     `json:"deal_type"`
	ImageURL     string       `json:"image_url"`
	Images       []string     `json:"images,omitempty"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Finishing    string       `json:"finishing"`
	Description  string       `json:"description,omitempty"`
	OwnerID      string       `json:"owner_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
