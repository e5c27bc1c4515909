package hos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hos-trip-planner/internal/domain"
)

func tripStart() time.Time {
	return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
}

func TestEvaluateDrivingFullyRested(t *testing.T) {
	s := NewCycleState(tripStart(), 0)

	d := EvaluateDriving(s, tripStart(), 2)
	require.Equal(t, Allow, d.Kind)
	assert.Equal(t, 2.0, d.DrivingHours)
}

func TestEvaluateDrivingPartialAtBreakLimit(t *testing.T) {
	s := NewCycleState(tripStart(), 0)

	d := EvaluateDriving(s, tripStart(), 9)
	require.Equal(t, AllowPartial, d.Kind)
	assert.InDelta(t, 8.0, d.DrivingHours, 1e-9)
}

func TestEvaluateDrivingBreakAtExactBoundary(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 8.0)
	now := tripStart().Add(8 * time.Hour)

	d := EvaluateDriving(s, now, 0.25)
	require.Equal(t, RequireBreak, d.Kind)
	assert.Equal(t, BreakHours, d.RestHours)
	assert.Equal(t, domain.OffDuty, d.Status)
}

func TestEvaluateDrivingWindowResetAtDrivingCap(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	// 8h drive, break, 3h drive: 11 driving hours in the shift.
	s.AddDriving(tripStart(), 8)
	s.AddOffDuty(BreakHours)
	s.AddDriving(tripStart().Add(8*time.Hour+30*time.Minute), 3)
	now := tripStart().Add(11*time.Hour + 30*time.Minute)

	d := EvaluateDriving(s, now, 1)
	require.Equal(t, RequireWindowReset, d.Kind)
	assert.Equal(t, WindowResetHours, d.RestHours)
	assert.Equal(t, domain.SleeperBerth, d.Status)
}

func TestEvaluateDrivingWindowResetAtWindowExpiry(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 6)
	// Clock well past 14h since window start but only 6h driven.
	now := tripStart().Add(14 * time.Hour)

	d := EvaluateDriving(s, now, 1)
	require.Equal(t, RequireWindowReset, d.Kind)
}

func TestEvaluateDrivingCycleRestartOutranksWindowAndBreak(t *testing.T) {
	// Driver at the 70-hour cap with the window and break limits also
	// due: the longest rest must win.
	s := NewCycleState(tripStart(), 62)
	s.AddDriving(tripStart(), 8)
	now := tripStart().Add(15 * time.Hour)

	d := EvaluateDriving(s, now, 1)
	require.Equal(t, RequireCycleRestart, d.Kind)
	assert.Equal(t, CycleRestartHours, d.RestHours)
	assert.Equal(t, domain.OffDuty, d.Status)
}

func TestEvaluateDrivingPartialBoundByCycle(t *testing.T) {
	// Scenario E shape: 68h of carry-in leaves 2h of cycle headroom.
	s := NewCycleState(tripStart(), 68)

	d := EvaluateDriving(s, tripStart(), 5)
	require.Equal(t, AllowPartial, d.Kind)
	assert.InDelta(t, 2.0, d.DrivingHours, 1e-9)

	s.AddDriving(tripStart(), d.DrivingHours)
	next := EvaluateDriving(s, tripStart().Add(2*time.Hour), 3)
	assert.Equal(t, RequireCycleRestart, next.Kind)
}

func TestEvaluateOnDutyOnlyCycleAndWindowApply(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 8)
	now := tripStart().Add(8 * time.Hour)

	// Break is due for driving, but an on-duty stop may still begin.
	d := EvaluateOnDuty(s, now, 1)
	assert.Equal(t, Allow, d.Kind)

	expired := EvaluateOnDuty(s, tripStart().Add(14*time.Hour), 1)
	assert.Equal(t, RequireWindowReset, expired.Kind)
}

func TestEvaluateOnDutyStopMustFitInCycle(t *testing.T) {
	// 69h used leaves 1h of cycle headroom: a 1h stop fits exactly,
	// a longer one mandates the restart before it begins.
	s := NewCycleState(tripStart(), 69)

	d := EvaluateOnDuty(s, tripStart(), 1)
	assert.Equal(t, Allow, d.Kind)

	over := EvaluateOnDuty(s, tripStart(), 1.25)
	require.Equal(t, RequireCycleRestart, over.Kind)
	assert.Equal(t, CycleRestartHours, over.RestHours)
}

func TestEvaluateOnDutyStopMustFitInWindow(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 8)
	now := tripStart().Add(13 * time.Hour)

	// One hour left in the window: a 1h stop fits, a 2h stop does not.
	d := EvaluateOnDuty(s, now, 1)
	assert.Equal(t, Allow, d.Kind)

	over := EvaluateOnDuty(s, now, 2)
	require.Equal(t, RequireWindowReset, over.Kind)
	assert.Equal(t, WindowResetHours, over.RestHours)
	assert.Equal(t, domain.SleeperBerth, over.Status)
}

func TestDerivedQueriesFloorAtZero(t *testing.T) {
	s := NewCycleState(tripStart(), 75) // over-seeded carry-in
	s.AddDriving(tripStart(), 12)

	assert.Equal(t, 0.0, s.TimeUntilBreakRequired())
	assert.Equal(t, 0.0, s.TimeUntilDrivingCap())
	assert.Equal(t, 0.0, s.TimeUntilWindowExpires(tripStart().Add(20*time.Hour)))
	assert.Equal(t, 0.0, s.TimeRemainingInCycle(tripStart()))
}

func TestOnDutyStopQualifiesAsBreak(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 7)

	s.AddOnDuty(tripStart().Add(7*time.Hour), 1.0, true)
	assert.Equal(t, 0.0, s.DrivingSinceBreak)

	// A short stop does not qualify.
	s.AddDriving(tripStart().Add(8*time.Hour), 2)
	s.AddOnDuty(tripStart().Add(10*time.Hour), 0.25, true)
	assert.InDelta(t, 2.0, s.DrivingSinceBreak, 1e-9)
}

func TestResetWindowKeepsCycleHours(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 11)
	restEnd := tripStart().Add(21 * time.Hour)

	s.ResetWindow(restEnd, WindowResetHours)

	assert.Equal(t, 0.0, s.DrivingInWindow)
	assert.Equal(t, 0.0, s.OnDutyInWindow)
	assert.Equal(t, restEnd, s.WindowStart)
	assert.InDelta(t, CycleLimitHours-11, s.TimeRemainingInCycle(restEnd), 1e-9)
}

func TestRestartCycleClearsLedger(t *testing.T) {
	s := NewCycleState(tripStart(), 68)
	s.AddDriving(tripStart(), 2)
	restEnd := tripStart().Add(36 * time.Hour)

	s.RestartCycle(restEnd)

	assert.InDelta(t, CycleLimitHours, s.TimeRemainingInCycle(restEnd), 1e-9)
}

func TestLedgerEvictsDaysOutsideTrailingWindow(t *testing.T) {
	s := NewCycleState(tripStart(), 0)
	s.AddDriving(tripStart(), 10)

	// Same calendar week: hours still count.
	assert.InDelta(t, 60.0, s.TimeRemainingInCycle(tripStart().AddDate(0, 0, 7)), 1e-9)

	// Nine days later the start day has left the trailing 8-day span.
	assert.InDelta(t, 70.0, s.TimeRemainingInCycle(tripStart().AddDate(0, 0, 8)), 1e-9)
}

func TestLedgerSplitsSpansAtMidnight(t *testing.T) {
	// 22:00 start, 4 hours of driving: 2h on each calendar day.
	start := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	s := NewCycleState(start, 0)
	s.AddDriving(start, 4)

	require.Len(t, s.ledger, 2)
	assert.InDelta(t, 2.0, s.ledger[0].hours, 1e-9)
	assert.InDelta(t, 2.0, s.ledger[1].hours, 1e-9)
}
