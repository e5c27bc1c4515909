package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hos-trip-planner/internal/adapters/routing"
	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

// memTripRepository keeps trips in a map; enough for handler tests.
type memTripRepository struct {
	trips map[string]*domain.Trip
}

func newMemTripRepository() *memTripRepository {
	return &memTripRepository{trips: make(map[string]*domain.Trip)}
}

func (r *memTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	r.trips[trip.ID] = trip
	return nil
}

func (r *memTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, ports.ErrTripNotFound
	}
	return trip, nil
}

func testHandler(repo ports.TripRepository) *TripHandler {
	chicago := domain.Location{Coordinates: domain.Coordinates{Lon: -87.6298, Lat: 41.8781}, Address: "Chicago, IL"}
	milwaukee := domain.Location{Coordinates: domain.Coordinates{Lon: -87.9065, Lat: 43.0389}, Address: "Milwaukee, WI"}
	madison := domain.Location{Coordinates: domain.Coordinates{Lon: -89.4012, Lat: 43.0731}, Address: "Madison, WI"}

	route := &domain.Route{
		Legs: []domain.RouteLeg{
			{Ordinal: 0, From: "current", To: "pickup", DistanceMiles: 92, DrivingHours: 1.6},
			{Ordinal: 1, From: "pickup", To: "dropoff", DistanceMiles: 80, DrivingHours: 1.4},
		},
		TotalDistanceMiles: 172,
		TotalDurationHours: 3.0,
		Polyline:           "mockpolyline",
		Waypoints: []domain.Waypoint{
			{Name: chicago.Address, Kind: "current", Coordinates: chicago.Coordinates},
			{Name: milwaukee.Address, Kind: "pickup", Coordinates: milwaukee.Coordinates},
			{Name: madison.Address, Kind: "dropoff", Coordinates: madison.Coordinates},
		},
	}

	return &TripHandler{
		Geocoder: &routing.MockGeocoder{Locations: map[string]domain.Location{
			"Chicago, IL":   chicago,
			"Milwaukee, WI": milwaukee,
			"Madison, WI":   madison,
		}},
		Provider: &routing.MockRouteProvider{Route: route},
		Repo:     repo,
		Now:      func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) },
	}
}

func TestPlanTrip(t *testing.T) {
	repo := newMemTripRepository()
	h := testHandler(repo)

	body := `{
		"current": {"address": "Chicago, IL"},
		"pickup": {"address": "Milwaukee, WI"},
		"dropoff": {"address": "Madison, WI"},
		"cycle_used_hours": 10
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.TripID == "" {
		t.Error("expected a trip id")
	}
	if len(res.Schedule) == 0 {
		t.Fatal("expected schedule entries")
	}
	if len(res.DailyLogs) == 0 {
		t.Fatal("expected daily logs")
	}
	if res.Route.Polyline != "mockpolyline" {
		t.Errorf("polyline = %q", res.Route.Polyline)
	}

	// 3h driving plus 1h pickup and 1h dropoff, no rests needed.
	if got := res.Summary.TotalDrivingHours; got < 2.9 || got > 3.1 {
		t.Errorf("driving hours = %f, want ~3", got)
	}
	if got := res.Summary.TotalOnDutyHours; got < 4.9 || got > 5.1 {
		t.Errorf("on-duty hours = %f, want ~5", got)
	}
	if res.Summary.RestBreaks != 0 {
		t.Errorf("rest breaks = %d, want 0", res.Summary.RestBreaks)
	}

	// Entries must tile the trip with no gaps.
	for i := 1; i < len(res.Schedule); i++ {
		if !res.Schedule[i].Start.Equal(res.Schedule[i-1].End) {
			t.Errorf("gap between entries %d and %d", i-1, i)
		}
	}

	if _, err := repo.GetTrip(context.Background(), res.TripID); err != nil {
		t.Errorf("trip was not persisted: %v", err)
	}
}

func TestPlanTripCoordinatesInput(t *testing.T) {
	h := testHandler(newMemTripRepository())

	body := `{
		"current": {"lat": 41.8781, "lng": -87.6298},
		"pickup": {"address": "Milwaukee, WI"},
		"dropoff": {"address": "Madison, WI"},
		"cycle_used_hours": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPlanTripValidation(t *testing.T) {
	h := testHandler(newMemTripRepository())

	cases := []struct {
		name string
		body string
	}{
		{"cycle hours above limit", `{"current":{"address":"Chicago, IL"},"pickup":{"address":"Milwaukee, WI"},"dropoff":{"address":"Madison, WI"},"cycle_used_hours":71}`},
		{"missing location", `{"current":{},"pickup":{"address":"Milwaukee, WI"},"dropoff":{"address":"Madison, WI"},"cycle_used_hours":0}`},
		{"unknown address", `{"current":{"address":"Nowhere"},"pickup":{"address":"Milwaukee, WI"},"dropoff":{"address":"Madison, WI"},"cycle_used_hours":0}`},
		{"invalid json", `{"current":`},
		{"unknown field", `{"wat":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/plan-trip", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Plan(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPlanTripMethodNotAllowed(t *testing.T) {
	h := testHandler(newMemTripRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/plan-trip", nil)
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestGetTrip(t *testing.T) {
	repo := newMemTripRepository()
	h := testHandler(repo)

	// Plan a trip first so there is something to fetch.
	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip", strings.NewReader(
		`{"current":{"address":"Chicago, IL"},"pickup":{"address":"Milwaukee, WI"},"dropoff":{"address":"Madison, WI"},"cycle_used_hours":0}`))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("plan status = %d", rec.Code)
	}

	var planned dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &planned); err != nil {
		t.Fatalf("decode plan response: %v", err)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/trips/"+planned.TripID, nil)
	getRec := httptest.NewRecorder()
	h.Get(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", getRec.Code, getRec.Body.String())
	}

	var got dto.TripResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if got.TripID != planned.TripID {
		t.Errorf("trip id = %q, want %q", got.TripID, planned.TripID)
	}
	if len(got.Schedule) != len(planned.Schedule) {
		t.Errorf("schedule length = %d, want %d", len(got.Schedule), len(planned.Schedule))
	}
}

func TestGetTripNotFound(t *testing.T) {
	h := testHandler(newMemTripRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/trips/unknown-id", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
