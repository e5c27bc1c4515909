package scheduler

import (
	"errors"
	"fmt"

	"hos-trip-planner/internal/hos"
)

// ErrEmptyRoute is returned when a schedule is requested for zero legs.
var ErrEmptyRoute = errors.New("build schedule: route has no legs")

// InvalidLegError reports a leg with a negative distance, duration or
// stop length. Validation runs before any entry is emitted, so a failed
// run returns no partial schedule.
type InvalidLegError struct {
	Ordinal int
	Field   string
	Value   float64
}

func (e *InvalidLegError) Error() string {
	return fmt.Sprintf("build schedule: leg %d: %s must be non-negative, got %g", e.Ordinal, e.Field, e.Value)
}

// ImpossibleConstraintError reports a fixed on-duty stop that can never
// fit inside a single 14-hour duty window. This is a configuration
// error, never silently truncated.
type ImpossibleConstraintError struct {
	Ordinal   int
	StopHours float64
}

func (e *ImpossibleConstraintError) Error() string {
	return fmt.Sprintf(
		"build schedule: leg %d: fixed stop of %gh exceeds the %gh duty window",
		e.Ordinal, e.StopHours, float64(hos.MaxDutyWindowHours),
	)
}
