package handlers

import (
	"log"
	"net/http"
	"strings"

	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

// GeocodeHandler exposes address resolution as standalone endpoints so
// clients can validate locations before planning a trip.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.GeocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	addr := strings.TrimSpace(req.Address)
	if addr == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	loc, err := h.Geocoder.Geocode(r.Context(), addr)
	if err != nil {
		log.Printf("geocode failed: address=%q err=%v", addr, err)
		writeError(w, r, http.StatusBadRequest, "could not geocode address")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Address: loc.Address,
		Lat:     loc.Lat,
		Lng:     loc.Lon,
	})
}

func (h *GeocodeHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.ReverseGeocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		writeError(w, r, http.StatusBadRequest, "lat/lng out of range")
		return
	}

	coords := domain.Coordinates{Lon: req.Lng, Lat: req.Lat}
	addr, err := h.Geocoder.ReverseGeocode(r.Context(), coords)
	if err != nil {
		log.Printf("reverse geocode failed: lat=%f lng=%f err=%v", req.Lat, req.Lng, err)
		writeError(w, r, http.StatusBadRequest, "could not reverse geocode coordinates")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Address: addr,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
}
