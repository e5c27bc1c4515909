package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hos-trip-planner/internal/adapters/routing"
	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/domain"
)

func TestGeocode(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &routing.MockGeocoder{Locations: map[string]domain.Location{
		"Chicago, IL": {Coordinates: domain.Coordinates{Lon: -87.6298, Lat: 41.8781}, Address: "Chicago, IL"},
	}}}

	req := httptest.NewRequest(http.MethodPost, "/api/geocode", strings.NewReader(`{"address":"Chicago, IL"}`))
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.LocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Lat != 41.8781 || res.Lng != -87.6298 {
		t.Errorf("coords = %f,%f", res.Lat, res.Lng)
	}
}

func TestGeocodeUnknownAddress(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &routing.MockGeocoder{}}

	req := httptest.NewRequest(http.MethodPost, "/api/geocode", strings.NewReader(`{"address":"Nowhere"}`))
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReverseGeocode(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &routing.MockGeocoder{}}

	req := httptest.NewRequest(http.MethodPost, "/api/reverse-geocode", strings.NewReader(`{"lat":41.8781,"lng":-87.6298}`))
	rec := httptest.NewRecorder()
	h.ReverseGeocode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.LocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Address == "" {
		t.Error("expected a resolved address")
	}
}

func TestReverseGeocodeOutOfRange(t *testing.T) {
	h := &GeocodeHandler{Geocoder: &routing.MockGeocoder{}}

	req := httptest.NewRequest(http.MethodPost, "/api/reverse-geocode", strings.NewReader(`{"lat":100,"lng":0}`))
	rec := httptest.NewRecorder()
	h.ReverseGeocode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
