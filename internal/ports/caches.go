package ports

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// GeocodeCache stores resolved address coordinates so repeated planning
// requests skip the external geocoder. A nil cache is a valid "always
// miss" implementation from the caller's point of view.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses; absent keys are
	// simply missing from the result.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store resolved coordinates.
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// RouteCache stores computed routes keyed by their waypoint signature.
type RouteCache interface {
	// Fetch a cached route; a nil route with nil error means a miss.
	Get(ctx context.Context, key string) (*domain.Route, error)
	// Store a computed route.
	Put(ctx context.Context, key string, route *domain.Route) error
}
