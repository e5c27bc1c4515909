package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hos-trip-planner/internal/domain"
)

func TestOSRMRouteProviderParsesRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 321868.8,
				"duration": 21600,
				"geometry": "abc123",
				"legs": [
					{"distance": 160934.4, "duration": 10800},
					{"distance": 160934.4, "duration": 10800}
				]
			}],
			"waypoints": [
				{"name": "A", "location": [-87.6, 41.8]},
				{"name": "B", "location": [-90.1, 38.6]},
				{"name": "C", "location": [-94.5, 39.0]}
			]
		}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := domain.Location{Coordinates: domain.Coordinates{Lon: -87.6, Lat: 41.8}, Address: "Chicago, IL"}
	pickup := domain.Location{Coordinates: domain.Coordinates{Lon: -90.1, Lat: 38.6}, Address: "St Louis, MO"}
	dropoff := domain.Location{Coordinates: domain.Coordinates{Lon: -94.5, Lat: 39.0}, Address: "Kansas City, MO"}

	route, err := provider.GetRoute(context.Background(), current, pickup, dropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(route.Legs))
	}
	// 160934.4 m is exactly 100 miles; 10800 s is 3 hours.
	if diff := route.Legs[0].DistanceMiles - 100.0; diff > 0.01 || diff < -0.01 {
		t.Fatalf("leg distance = %f, want ~100", route.Legs[0].DistanceMiles)
	}
	if route.Legs[0].DrivingHours != 3.0 {
		t.Fatalf("leg duration = %f, want 3", route.Legs[0].DrivingHours)
	}
	if route.Legs[0].From != "current" || route.Legs[0].To != "pickup" {
		t.Fatalf("leg 0 endpoints = %q -> %q", route.Legs[0].From, route.Legs[0].To)
	}
	if route.Legs[1].To != "dropoff" {
		t.Fatalf("leg 1 destination = %q", route.Legs[1].To)
	}

	if route.Polyline != "abc123" {
		t.Fatalf("polyline = %q", route.Polyline)
	}
	if len(route.Waypoints) != 3 || route.Waypoints[1].Kind != "pickup" {
		t.Fatalf("unexpected waypoints: %+v", route.Waypoints)
	}

	want := "/route/v1/driving/-87.600000,41.800000;-90.100000,38.600000;-94.500000,39.000000"
	if gotPath != want {
		t.Fatalf("request path = %q, want %q", gotPath, want)
	}
}

func TestOSRMRouteProviderNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := provider.GetRoute(context.Background(), domain.Location{}, domain.Location{}, domain.Location{}); err == nil {
		t.Fatal("expected error for NoRoute response")
	}
}
