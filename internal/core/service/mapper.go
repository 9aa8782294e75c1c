package service

import (
	"encoding/json"
	"strconv"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// rowToListing maps a remote row into the internal entity shape, renaming the
// wire columns and coercing numerics that may arrive as strings or narrow
// integer types.
func rowToListing(row ports.ListingRow) domain.Listing {
	return domain.Listing{
		ID:           row.ID,
		Title:        row.Title,
		Price:        coerceFloat(row.Price),
		Area:         coerceFloat(row.Area),
		Location:     row.Location,
		PropertyType: domain.PropertyType(row.Type),
		DealType:     domain.DealType(row.Status),
		ImageURL:     row.ImageURL,
		Images:       row.Images,
		Bedrooms:     coerceInt(row.Bedrooms),
		Bathrooms:    coerceInt(row.Bathrooms),
		Finishing:    row.Finishing,
		Description:  row.Description,
		OwnerID:      row.OwnerID,
		CreatedAt:    row.CreatedAt,
	}
}

// coerceFloat accepts the numeric representations the transport may produce.
// Unparseable values coerce to zero rather than failing the whole fetch.
func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
