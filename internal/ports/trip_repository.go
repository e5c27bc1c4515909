package ports

import (
	"context"
	"errors"

	"hos-trip-planner/internal/domain"
)

// ErrTripNotFound is returned by repositories for unknown trip IDs.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for persisting and reloading planned trips.
type TripRepository interface {
	// Store a planned trip with its route, schedule and summary.
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	// Load a previously planned trip by ID.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
}
