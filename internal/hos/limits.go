// Package hos implements the FMCSA hours-of-service rules for
// property-carrying drivers: the 11-hour driving cap and 14-hour duty
// window per shift, the 30-minute break after 8 cumulative driving
// hours, and the rolling 70-hour/8-day cycle with its 34-hour restart.
//
// The package is pure: it never reads a wall clock. All temporal
// reasoning is over timestamps supplied by the caller, so a scheduling
// run is deterministic for a given trip start.
package hos

// FMCSA limits (property carrier, 70hr/8day cycle). All values in hours
// unless named otherwise.
const (
	MaxDrivingHours        = 11.0
	MaxDutyWindowHours     = 14.0
	BreakAfterDrivingHours = 8.0
	BreakHours             = 0.5
	WindowResetHours       = 10.0
	CycleLimitHours        = 70.0
	CycleDays              = 8
	CycleRestartHours      = 34.0
)

// epsilon absorbs float64 accumulation noise in boundary comparisons,
// so a leg of exactly 8.0 driving hours still triggers the break.
const epsilon = 1e-9
