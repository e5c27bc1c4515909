package ports

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// Contract for resolving addresses to coordinates and back.
type Geocoder interface {
	// Resolve a free-form address to a location.
	Geocode(ctx context.Context, address string) (domain.Location, error)
	// Resolve coordinates to a short human-readable address.
	ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error)
}
