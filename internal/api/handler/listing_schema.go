package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// --- Request / Response types ---

// listingRequest accepts numeric fields as either JSON numbers or strings,
// matching what form-driven clients actually send. Coercion happens here so
// the service layer only ever sees parsed numerics.
type listingRequest struct {
	Title        string `json:"title"        validate:"required"`
	Price        any    `json:"price"        validate:"required"`
	Area         any    `json:"area"         validate:"required"`
	Location     string `json:"location"     validate:"required"`
	PropertyType string `json:"type"         validate:"required,oneof=apartment villa land commercial"`
	DealType     string `json:"status"       validate:"required,oneof=sale rent"`
	ImageURL     string `json:"image_url"`
	Bedrooms     any    `json:"bedrooms"`
	Bathrooms    any    `json:"bathrooms"`
	Finishing    string `json:"finishing"`
	Description  string `json:"description"`
}

type listingsResponse struct {
	Mode     ports.Mode       `json:"mode"`
	Listings []domain.Listing `json:"listings"`
}

type uploadResponse struct {
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

// toInput converts the wire request into a service input, coercing any
// string-typed numerics. Unparseable values surface as validation errors.
func (r *listingRequest) toInput() (ports.ListingInput, error) {
	price, err := coerceFloat(r.Price, "price")
	if err != nil {
		return ports.ListingInput{}, err
	}
	area, err := coerceFloat(r.Area, "area")
	if err != nil {
		return ports.ListingInput{}, err
	}
	bedrooms, err := coerceInt(r.Bedrooms, "bedrooms")
	if err != nil {
		return ports.ListingInput{}, err
	}
	bathrooms, err := coerceInt(r.Bathrooms, "bathrooms")
	if err != nil {
		return ports.ListingInput{}, err
	}

	return ports.ListingInput{
		Title:        strings.TrimSpace(r.Title),
		Price:        price,
		Area:         area,
		Location:     strings.TrimSpace(r.Location),
		PropertyType: r.PropertyType,
		DealType:     r.DealType,
		ImageURL:     r.ImageURL,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Finishing:    r.Finishing,
		Description:  r.Description,
	}, nil
}

func coerceFloat(v any, field string) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", domain.ErrValidation, field)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", domain.ErrValidation, field)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s is not numeric", domain.ErrValidation, field)
	}
}

func coerceInt(v any, field string) (int, error) {
	f, err := coerceFloat(v, field)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
