package hos

import (
	"time"

	"hos-trip-planner/internal/domain"
)

// DecisionKind enumerates the closed set of rules-engine outcomes.
type DecisionKind int

const (
	Allow DecisionKind = iota
	AllowPartial
	RequireBreak
	RequireWindowReset
	RequireCycleRestart
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case AllowPartial:
		return "allow-partial"
	case RequireBreak:
		return "require-break"
	case RequireWindowReset:
		return "require-window-reset"
	case RequireCycleRestart:
		return "require-cycle-restart"
	}
	return "unknown"
}

// Decision is the rules engine's answer to "may this duty time
// proceed". DrivingHours is set for Allow/AllowPartial; RestHours,
// Status and Reason for the Require variants.
type Decision struct {
	Kind         DecisionKind
	DrivingHours float64
	RestHours    float64
	Status       domain.DutyStatus
	Reason       string
}

// EvaluateDriving decides whether `proposed` hours of continuous
// driving may begin at `now` given the current state.
//
// Constraints are checked in priority order: 70-hour cycle, then the
// 11-hour driving cap / 14-hour window, then the 8-hour break rule.
// When several limits are already due, the longest mandatory rest wins;
// inserting a shorter rest while a longer one is owed would itself be a
// violation. The caller must apply the mandated rest and re-evaluate.
func EvaluateDriving(s *CycleState, now time.Time, proposed float64) Decision {
	cycleRem := s.TimeRemainingInCycle(now)
	if cycleRem <= epsilon {
		return cycleRestartDecision()
	}

	windowRem := s.TimeUntilWindowExpires(now)
	driveRem := s.TimeUntilDrivingCap()
	if windowRem <= epsilon || driveRem <= epsilon {
		return windowResetDecision()
	}

	breakRem := s.TimeUntilBreakRequired()
	if breakRem <= epsilon {
		return breakDecision()
	}

	limit := cycleRem
	for _, rem := range []float64{windowRem, driveRem, breakRem} {
		if rem < limit {
			limit = rem
		}
	}

	if proposed <= limit+epsilon {
		return Decision{Kind: Allow, DrivingHours: proposed}
	}
	return Decision{Kind: AllowPartial, DrivingHours: limit}
}

// EvaluateOnDuty decides whether a fixed non-driving on-duty activity
// of `hours` may begin at `now`. Only the cycle cap and the duty
// window apply; the break and driving caps bound driving time alone.
// Unlike driving, a fixed stop is indivisible: it must fit whole in
// the remaining headroom or the mandated rest comes first.
func EvaluateOnDuty(s *CycleState, now time.Time, hours float64) Decision {
	if s.TimeRemainingInCycle(now) < hours-epsilon {
		return cycleRestartDecision()
	}
	if s.TimeUntilWindowExpires(now) < hours-epsilon {
		return windowResetDecision()
	}
	return Decision{Kind: Allow}
}

func breakDecision() Decision {
	return Decision{
		Kind:      RequireBreak,
		RestHours: BreakHours,
		Status:    domain.OffDuty,
		Reason:    "30-min rest break (8hr driving rule)",
	}
}

func windowResetDecision() Decision {
	return Decision{
		Kind:      RequireWindowReset,
		RestHours: WindowResetHours,
		Status:    domain.SleeperBerth,
		Reason:    "10-hr rest (daily driving limits)",
	}
}

func cycleRestartDecision() Decision {
	return Decision{
		Kind:      RequireCycleRestart,
		RestHours: CycleRestartHours,
		Status:    domain.OffDuty,
		Reason:    "34-hr restart (70hr/8day cycle limit)",
	}
}
