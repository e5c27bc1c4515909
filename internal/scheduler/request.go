package scheduler

import (
	"time"

	"hos-trip-planner/internal/domain"
)

const (
	// Fixed service time at the pickup and dropoff docks.
	PickupStopHours  = 1.0
	DropoffStopHours = 1.0

	pickupNote  = "Pickup - Loading"
	dropoffNote = "Dropoff - Unloading"
)

// RequestFromRoute turns a computed route into a scheduling request,
// attaching the fixed pickup stop to the leg that arrives at the pickup
// and the dropoff stop to the final leg.
func RequestFromRoute(route *domain.Route, start time.Time, cycleUsedHours float64) Request {
	legs := make([]domain.RouteLeg, len(route.Legs))
	copy(legs, route.Legs)

	for i := range legs {
		if i == len(legs)-1 {
			legs[i].StopHours = DropoffStopHours
			legs[i].StopNote = dropoffNote
			continue
		}
		legs[i].StopHours = PickupStopHours
		legs[i].StopNote = pickupNote
	}

	return Request{
		Legs:           legs,
		StartTime:      start,
		CycleUsedHours: cycleUsedHours,
	}
}
