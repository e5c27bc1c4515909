// Package scheduler converts an ordered list of route legs plus a trip
// start time into a gapless, HOS-compliant sequence of duty-status
// entries. The computation is a sequential fold over legs and time: it
// performs no I/O, reads no clock, and owns its CycleState exclusively,
// so identical input always yields an identical schedule.
package scheduler

import (
	"math"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
)

const (
	// Fuel stop at least every 1000 miles, 30 minutes on duty.
	FuelStopIntervalMiles = 1000.0
	FuelStopHours         = 0.5
)

const epsilon = 1e-9

// Request is one scheduling run's input. CycleUsedHours carries in
// on-duty time already spent in the trailing 8 days (0 for a fully
// rested driver).
type Request struct {
	Legs           []domain.RouteLeg
	StartTime      time.Time
	CycleUsedHours float64
}

// Result bundles the emitted schedule with its summary.
type Result struct {
	Entries []domain.ScheduleEntry
	Summary domain.TripSummary
}

// BuildSchedule runs the scheduling loop. It fails fast on invalid
// input and never returns a partial schedule.
func BuildSchedule(req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	b := &builder{
		state: hos.NewCycleState(req.StartTime, req.CycleUsedHours),
		clock: req.StartTime,
	}

	// Driving time still owed across the whole trip, used to decide
	// whether a fuel stop is worth inserting at a 1000-mile boundary.
	tripDrivingLeft := 0.0
	for _, leg := range req.Legs {
		tripDrivingLeft += leg.DrivingHours
	}

	for _, leg := range req.Legs {
		b.driveLeg(leg, &tripDrivingLeft)

		if leg.StopHours > epsilon {
			b.onDutyStop(leg)
		}
	}

	return &Result{Entries: b.entries, Summary: b.summary(req.StartTime)}, nil
}

func validate(req Request) error {
	if len(req.Legs) == 0 {
		return ErrEmptyRoute
	}
	for _, leg := range req.Legs {
		switch {
		case leg.DistanceMiles < 0:
			return &InvalidLegError{Ordinal: leg.Ordinal, Field: "distance_miles", Value: leg.DistanceMiles}
		case leg.DrivingHours < 0:
			return &InvalidLegError{Ordinal: leg.Ordinal, Field: "driving_hours", Value: leg.DrivingHours}
		case leg.StopHours < 0:
			return &InvalidLegError{Ordinal: leg.Ordinal, Field: "stop_hours", Value: leg.StopHours}
		}
		if leg.StopHours > hos.MaxDutyWindowHours {
			return &ImpossibleConstraintError{Ordinal: leg.Ordinal, StopHours: leg.StopHours}
		}
	}
	return nil
}

// builder accumulates the schedule. The exact clock and mile counters
// stay un-rounded; timestamps are rounded to the minute only at entry
// emission so rounding error never compounds across a multi-day trip.
type builder struct {
	state *hos.CycleState
	clock time.Time

	miles          float64
	milesSinceFuel float64
	entries        []domain.ScheduleEntry

	restBreaks    int
	windowResets  int
	cycleRestarts int
	fuelStops     int
}

// driveLeg consumes one leg's driving time through the rules engine,
// interleaving mandated rests and fuel stops until the leg's distance
// is fully covered.
func (b *builder) driveLeg(leg domain.RouteLeg, tripDrivingLeft *float64) {
	if leg.DrivingHours <= epsilon {
		// Nothing to drive; any distance is carried into the odometer.
		b.miles += leg.DistanceMiles
		b.milesSinceFuel += leg.DistanceMiles
		return
	}

	mph := leg.DistanceMiles / leg.DrivingHours
	remaining := leg.DrivingHours

	for remaining > epsilon {
		proposed := remaining
		if mph > epsilon {
			// Stop short of the next 1000-mile boundary.
			toFuel := FuelStopIntervalMiles - math.Mod(b.milesSinceFuel, FuelStopIntervalMiles)
			if hours := toFuel / mph; hours < proposed {
				proposed = hours
			}
		}

		d := hos.EvaluateDriving(b.state, b.clock, proposed)
		switch d.Kind {
		case hos.Allow, hos.AllowPartial:
			drive := d.DrivingHours
			b.emitDriving(drive, drive*mph, "Driving to "+leg.To)
			remaining -= drive
			*tripDrivingLeft -= drive

			if b.milesSinceFuel >= FuelStopIntervalMiles-epsilon && *tripDrivingLeft > epsilon {
				b.fuelStop()
			}
		default:
			b.mandatedRest(d)
		}
	}
}

// onDutyStop emits the leg's fixed pickup/dropoff activity, first
// settling any cycle or window constraint the stop itself triggers.
func (b *builder) onDutyStop(leg domain.RouteLeg) {
	for {
		d := hos.EvaluateOnDuty(b.state, b.clock, leg.StopHours)
		if d.Kind == hos.Allow {
			break
		}
		b.mandatedRest(d)
	}

	note := leg.StopNote
	if note == "" {
		note = "Stop at " + leg.To
	}
	start := b.clock
	b.emit(domain.OnDutyNotDriving, leg.StopHours, note)
	b.state.AddOnDuty(start, leg.StopHours, true)
}

func (b *builder) emitDriving(hours, miles float64, note string) {
	start := b.clock
	b.emitWithMiles(domain.Driving, hours, miles, note)
	b.miles += miles
	b.milesSinceFuel += miles
	b.state.AddDriving(start, hours)
}

func (b *builder) fuelStop() {
	start := b.clock
	b.emit(domain.OnDutyNotDriving, FuelStopHours, "Fuel stop")
	b.state.AddOnDuty(start, FuelStopHours, true)
	b.milesSinceFuel = 0
	b.fuelStops++
}

// mandatedRest emits the rest the rules engine demanded and applies its
// effect on the state.
func (b *builder) mandatedRest(d hos.Decision) {
	b.emit(d.Status, d.RestHours, d.Reason)

	switch d.Kind {
	case hos.RequireBreak:
		b.state.AddOffDuty(d.RestHours)
		b.restBreaks++
	case hos.RequireWindowReset:
		b.state.ResetWindow(b.clock, d.RestHours)
		b.windowResets++
	case hos.RequireCycleRestart:
		b.state.RestartCycle(b.clock)
		b.cycleRestarts++
	}
}

func (b *builder) emit(status domain.DutyStatus, hours float64, note string) {
	b.emitWithMiles(status, hours, 0, note)
}

// emitWithMiles appends one entry, advancing the exact clock and
// rounding the boundary timestamps to the minute. Both sides of a
// boundary round identically, so the sequence stays gapless. Entries
// whose rounded span collapses to zero are dropped.
func (b *builder) emitWithMiles(status domain.DutyStatus, hours, miles float64, note string) {
	startExact := b.clock
	endExact := startExact.Add(time.Duration(hours * float64(time.Hour)))
	b.clock = endExact

	start := startExact.Round(time.Minute)
	end := endExact.Round(time.Minute)
	if !end.After(start) {
		return
	}

	b.entries = append(b.entries, domain.ScheduleEntry{
		Status:     status,
		Start:      start,
		End:        end,
		MilesStart: b.miles,
		MilesEnd:   b.miles + miles,
		Note:       note,
	})
}

// summary folds over the emitted entries.
func (b *builder) summary(start time.Time) domain.TripSummary {
	s := domain.TripSummary{
		TotalMiles:    b.miles,
		RestBreaks:    b.restBreaks,
		WindowResets:  b.windowResets,
		CycleRestarts: b.cycleRestarts,
		FuelStops:     b.fuelStops,
		StartTime:     start.Round(time.Minute),
		ArrivalTime:   start.Round(time.Minute),
	}
	for _, e := range b.entries {
		h := e.DurationHours()
		if e.Status == domain.Driving {
			s.TotalDrivingHours += h
		}
		if e.Status.OnDuty() {
			s.TotalOnDutyHours += h
		} else {
			s.TotalOffDutyHours += h
		}
		s.ArrivalTime = e.End
	}
	s.TotalDurationHours = s.ArrivalTime.Sub(s.StartTime).Hours()
	return s
}
