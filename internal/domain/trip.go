package domain

import "time"

// Trip is the persisted outcome of one planning run: the resolved
// route, the HOS-compliant schedule, and its summary.
type Trip struct {
	ID             string
	CreatedAt      time.Time
	CycleUsedHours float64
	Route          Route
	Entries        []ScheduleEntry
	Summary        TripSummary
}
