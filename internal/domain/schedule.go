package domain

import "time"

// ScheduleEntry is the atomic output unit of the trip scheduler: one
// contiguous span of a single duty status. Entries of a trip form a
// gapless, non-overlapping, strictly increasing sequence from trip
// start to trip end. Created exclusively by the scheduler and
// immutable once emitted.
type ScheduleEntry struct {
	Status     DutyStatus
	Start      time.Time
	End        time.Time
	MilesStart float64
	MilesEnd   float64
	Note       string
}

func (e ScheduleEntry) DurationHours() float64 {
	return e.End.Sub(e.Start).Hours()
}

// TripSummary is a read-only aggregate folded over the final schedule.
type TripSummary struct {
	TotalMiles         float64
	TotalDurationHours float64
	TotalDrivingHours  float64
	TotalOnDutyHours   float64
	TotalOffDutyHours  float64
	RestBreaks         int
	WindowResets       int
	CycleRestarts      int
	FuelStops          int
	StartTime          time.Time
	ArrivalTime        time.Time
}
