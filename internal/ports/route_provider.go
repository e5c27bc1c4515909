package ports

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// Contract for computing a driving route through the trip's waypoints.
// Implementations resolve distance and duration externally (OSRM); the
// scheduler only ever sees the resulting legs.
type RouteProvider interface {
	// Return the route current -> pickup -> dropoff as ordered legs.
	GetRoute(ctx context.Context, current, pickup, dropoff domain.Location) (*domain.Route, error)
}
