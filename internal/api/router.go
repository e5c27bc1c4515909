package api

import (
	"net/http"
	"time"

	"hos-trip-planner/internal/api/handlers"
	"hos-trip-planner/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.TripRepository, provider ports.RouteProvider, geocoder ports.Geocoder, zone *time.Location) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Geocoder: geocoder,
		Provider: provider,
		Repo:     repo,
		Zone:     zone,
	}
	geoHandler := &handlers.GeocodeHandler{Geocoder: geocoder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/plan-trip", tripHandler.Plan)
	mux.HandleFunc("/api/trips/", tripHandler.Get)
	mux.HandleFunc("/api/geocode", geoHandler.Geocode)
	mux.HandleFunc("/api/reverse-geocode", geoHandler.ReverseGeocode)

	return loggingMiddleware(mux)
}
