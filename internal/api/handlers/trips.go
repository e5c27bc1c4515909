package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/logsheet"
	"hos-trip-planner/internal/ports"
	"hos-trip-planner/internal/scheduler"

	"github.com/google/uuid"
)

// TripHandler exposes trip planning and retrieval endpoints.
// It coordinates geocoding, routing, scheduling, log projection and
// persistence; the HOS arithmetic itself lives in the core packages.
type TripHandler struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
	Repo     ports.TripRepository
	Zone     *time.Location

	// Now is the wall clock, overridable in tests.
	Now func() time.Time
}

func (h *TripHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *TripHandler) zone() *time.Location {
	if h.Zone != nil {
		return h.Zone
	}
	return time.UTC
}

// Plan orchestrates one planning run: resolve the three trip locations,
// compute the route, build the HOS-compliant schedule, project daily
// logs, persist, respond.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PlanTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.CycleUsedHours < 0 || req.CycleUsedHours > hos.CycleLimitHours {
		writeError(w, r, http.StatusBadRequest, "cycle_used_hours must be between 0 and 70")
		return
	}

	ctx := r.Context()

	current, err := h.resolveLocation(ctx, req.Current, "current")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	pickup, err := h.resolveLocation(ctx, req.Pickup, "pickup")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	dropoff, err := h.resolveLocation(ctx, req.Dropoff, "dropoff")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.planResolved(w, r, req, current, pickup, dropoff)
}

func (h *TripHandler) planResolved(w http.ResponseWriter, r *http.Request, req dto.PlanTripRequest, current, pickup, dropoff domain.Location) {
	ctx := r.Context()

	route, err := h.Provider.GetRoute(ctx, current, pickup, dropoff)
	if err != nil {
		log.Printf("route computation failed: %v", err)
		writeError(w, r, http.StatusBadRequest,
			"unable to calculate route between the given locations")
		return
	}

	now := h.now()
	start := now
	if req.StartTime != nil {
		start = *req.StartTime
	}

	result, err := scheduler.BuildSchedule(scheduler.RequestFromRoute(route, start, req.CycleUsedHours))
	if err != nil {
		log.Printf("schedule build failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip := &domain.Trip{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		CycleUsedHours: req.CycleUsedHours,
		Route:          *route,
		Entries:        result.Entries,
		Summary:        result.Summary,
	}

	if err := h.Repo.SaveTrip(ctx, trip); err != nil {
		log.Printf("save trip failed: trip_id=%s err=%v", trip.ID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(trip, h.zone()))
}

// Get reloads a previously planned trip by ID (path /api/trips/{id}).
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/trips/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusBadRequest, "trip id is required")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("load trip failed: trip_id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(trip, h.zone()))
}

// resolveLocation accepts either explicit coordinates (reverse-geocoded
// for display, best effort) or a free-form address (geocoded).
func (h *TripHandler) resolveLocation(ctx context.Context, in dto.LocationInput, field string) (domain.Location, error) {
	if in.Lat != nil && in.Lng != nil {
		coords := domain.Coordinates{Lon: *in.Lng, Lat: *in.Lat}
		addr, err := h.Geocoder.ReverseGeocode(ctx, coords)
		if err != nil {
			log.Printf("reverse geocode failed: field=%s err=%v", field, err)
			addr = fmt.Sprintf("%.4f, %.4f", coords.Lat, coords.Lon)
		}
		return domain.Location{Coordinates: coords, Address: addr}, nil
	}

	addr := strings.TrimSpace(in.Address)
	if addr == "" {
		return domain.Location{}, fmt.Errorf("%s location requires an address or lat/lng", field)
	}

	loc, err := h.Geocoder.Geocode(ctx, addr)
	if err != nil {
		return domain.Location{}, fmt.Errorf("could not geocode %s location %q", field, addr)
	}
	return loc, nil
}

func toTripResponse(trip *domain.Trip, zone *time.Location) dto.TripResponse {
	res := dto.TripResponse{
		TripID:    trip.ID,
		CreatedAt: trip.CreatedAt,
		Route: dto.RouteResponse{
			Legs:               make([]dto.RouteLegResponse, 0, len(trip.Route.Legs)),
			TotalDistanceMiles: trip.Route.TotalDistanceMiles,
			TotalDurationHours: trip.Route.TotalDurationHours,
			Polyline:           trip.Route.Polyline,
			Waypoints:          make([]dto.WaypointResponse, 0, len(trip.Route.Waypoints)),
		},
		Schedule: toEntryResponses(trip.Entries),
	}

	for _, leg := range trip.Route.Legs {
		res.Route.Legs = append(res.Route.Legs, dto.RouteLegResponse{
			From:          leg.From,
			To:            leg.To,
			DistanceMiles: leg.DistanceMiles,
			DrivingHours:  leg.DrivingHours,
		})
	}
	for _, wp := range trip.Route.Waypoints {
		res.Route.Waypoints = append(res.Route.Waypoints, dto.WaypointResponse{
			Name: wp.Name,
			Kind: wp.Kind,
			Lat:  wp.Lat,
			Lng:  wp.Lon,
		})
	}

	for _, day := range logsheet.Project(trip.Entries, zone) {
		res.DailyLogs = append(res.DailyLogs, dto.DailyLogResponse{
			Date:      day.Date,
			DayNumber: day.DayNumber,
			Entries:   toEntryResponses(day.Entries),
			Totals: dto.DailyTotalsResponse{
				DrivingHours: day.Totals.DrivingHours,
				OnDutyHours:  day.Totals.OnDutyHours,
				OffDutyHours: day.Totals.OffDutyHours,
				SleeperHours: day.Totals.SleeperHours,
				Miles:        day.Totals.Miles,
			},
			Remarks: day.Remarks,
		})
	}

	s := trip.Summary
	res.Summary = dto.TripSummaryResponse{
		TotalMiles:          s.TotalMiles,
		TotalDurationHours:  s.TotalDurationHours,
		TotalDrivingHours:   s.TotalDrivingHours,
		TotalOnDutyHours:    s.TotalOnDutyHours,
		TotalOffDutyHours:   s.TotalOffDutyHours,
		RestBreaks:          s.RestBreaks,
		WindowResets:        s.WindowResets,
		CycleRestarts:       s.CycleRestarts,
		FuelStops:           s.FuelStops,
		CycleHoursUsed:      trip.CycleUsedHours,
		CycleHoursRemaining: math.Max(0, hos.CycleLimitHours-trip.CycleUsedHours-s.TotalOnDutyHours),
		StartTime:           s.StartTime,
		ArrivalTime:         s.ArrivalTime,
	}
	return res
}

func toEntryResponses(entries []domain.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ScheduleEntryResponse{
			Status:     string(e.Status),
			Start:      e.Start,
			End:        e.End,
			MilesStart: e.MilesStart,
			MilesEnd:   e.MilesEnd,
			Note:       e.Note,
		})
	}
	return out
}
