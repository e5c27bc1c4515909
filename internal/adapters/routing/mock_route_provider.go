package routing

import (
	"context"
	"fmt"

	"hos-trip-planner/internal/domain"
)

// MockRouteProvider serves a fixed route for tests.
type MockRouteProvider struct {
	Route *domain.Route
	Err   error
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, current, pickup, dropoff domain.Location) (*domain.Route, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Route, nil
}

// MockGeocoder resolves addresses from a fixed table for tests.
type MockGeocoder struct {
	Locations map[string]domain.Location
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Location, error) {
	loc, ok := g.Locations[address]
	if !ok {
		return domain.Location{}, fmt.Errorf("no geocode result for %q", address)
	}
	return loc, nil
}

func (g *MockGeocoder) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error) {
	return fmt.Sprintf("%.4f, %.4f", coords.Lat, coords.Lon), nil
}
