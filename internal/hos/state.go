package hos

import "time"

// dayHours is one row of the rolling 8-day on-duty ledger.
type dayHours struct {
	day   time.Time // midnight of the calendar day, in the trip's zone
	hours float64
}

// CycleState is the mutable accumulator owned by a single scheduling
// run. It is never shared across runs and is discarded afterwards.
//
// The rolling cycle total is kept as an explicit per-calendar-day
// ledger rather than a single counter so that hours falling outside
// the trailing 8-day span drop off exactly.
type CycleState struct {
	DrivingSinceBreak  float64
	DrivingInWindow    float64
	OnDutyInWindow     float64
	WindowStart        time.Time
	ConsecutiveOffDuty float64

	ledger []dayHours // oldest first
}

// NewCycleState returns the state of a driver at trip start.
// carryInHours seeds the cycle ledger with on-duty time already used in
// the trailing 8 days, attributed to the start day; zero means fully
// rested.
func NewCycleState(start time.Time, carryInHours float64) *CycleState {
	s := &CycleState{WindowStart: start}
	if carryInHours > 0 {
		s.ledger = append(s.ledger, dayHours{day: midnight(start), hours: carryInHours})
	}
	return s
}

// TimeUntilBreakRequired reports driving hours left before the
// 30-minute break becomes mandatory, floored at zero.
func (s *CycleState) TimeUntilBreakRequired() float64 {
	return floorZero(BreakAfterDrivingHours - s.DrivingSinceBreak)
}

// TimeUntilDrivingCap reports driving hours left under the 11-hour
// per-shift cap, floored at zero.
func (s *CycleState) TimeUntilDrivingCap() float64 {
	return floorZero(MaxDrivingHours - s.DrivingInWindow)
}

// TimeUntilWindowExpires reports wall-clock hours left in the 14-hour
// duty window as of now, floored at zero. The window runs on elapsed
// time since WindowStart; short breaks do not pause it.
func (s *CycleState) TimeUntilWindowExpires(now time.Time) float64 {
	return floorZero(MaxDutyWindowHours - now.Sub(s.WindowStart).Hours())
}

// TimeRemainingInCycle reports on-duty hours left under the rolling
// 70-hour/8-day cap as of now, floored at zero. Ledger days older than
// the trailing 8 calendar days are evicted first.
func (s *CycleState) TimeRemainingInCycle(now time.Time) float64 {
	s.evict(now)

	var used float64
	for _, d := range s.ledger {
		used += d.hours
	}
	return floorZero(CycleLimitHours - used)
}

// AddDriving records hours of driving starting at the given instant.
func (s *CycleState) AddDriving(start time.Time, hours float64) {
	s.DrivingSinceBreak += hours
	s.DrivingInWindow += hours
	s.OnDutyInWindow += hours
	s.ConsecutiveOffDuty = 0
	s.addLedger(start, hours)
}

// AddOnDuty records non-driving on-duty time (pickup, dropoff, fuel).
// A period of 30 minutes or more qualifies as the mandatory break when
// countsAsBreak is set.
func (s *CycleState) AddOnDuty(start time.Time, hours float64, countsAsBreak bool) {
	s.OnDutyInWindow += hours
	s.ConsecutiveOffDuty = 0
	if countsAsBreak && hours >= BreakHours-epsilon {
		s.DrivingSinceBreak = 0
	}
	s.addLedger(start, hours)
}

// AddOffDuty records off-duty time shorter than the 10-hour reset. Any
// off-duty period clears the driving-since-break counter; the duty
// window keeps running.
func (s *CycleState) AddOffDuty(hours float64) {
	s.DrivingSinceBreak = 0
	s.ConsecutiveOffDuty += hours
}

// ResetWindow applies the effect of 10 consecutive off-duty hours
// ending at the given instant: a fresh duty window with cleared shift
// counters. Cycle hours are untouched.
func (s *CycleState) ResetWindow(end time.Time, restHours float64) {
	s.DrivingSinceBreak = 0
	s.DrivingInWindow = 0
	s.OnDutyInWindow = 0
	s.WindowStart = end
	s.ConsecutiveOffDuty += restHours
}

// RestartCycle applies the effect of a 34-hour restart ending at the
// given instant: the rolling ledger is cleared along with the shift
// counters.
func (s *CycleState) RestartCycle(end time.Time) {
	s.ledger = nil
	s.ResetWindow(end, CycleRestartHours)
}

// addLedger attributes on-duty hours to calendar days, splitting spans
// that cross midnight so day totals stay exact.
func (s *CycleState) addLedger(start time.Time, hours float64) {
	cur := start
	remaining := hours
	for remaining > epsilon {
		dayEnd := midnight(cur).AddDate(0, 0, 1)
		chunk := remaining
		if until := dayEnd.Sub(cur).Hours(); until < chunk {
			chunk = until
		}
		s.bumpDay(midnight(cur), chunk)
		cur = cur.Add(time.Duration(chunk * float64(time.Hour)))
		remaining -= chunk
	}
}

func (s *CycleState) bumpDay(day time.Time, hours float64) {
	if n := len(s.ledger); n > 0 && s.ledger[n-1].day.Equal(day) {
		s.ledger[n-1].hours += hours
		return
	}
	s.ledger = append(s.ledger, dayHours{day: day, hours: hours})
}

func (s *CycleState) evict(now time.Time) {
	cutoff := midnight(now).AddDate(0, 0, -(CycleDays - 1))
	i := 0
	for i < len(s.ledger) && s.ledger[i].day.Before(cutoff) {
		i++
	}
	s.ledger = s.ledger[i:]
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
