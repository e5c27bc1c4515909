package domain

import "fmt"

// DutyStatus is one of the four ELD duty statuses. Exactly one status
// is active at any instant of a schedule.
type DutyStatus string

const (
	OffDuty          DutyStatus = "OFF_DUTY"
	SleeperBerth     DutyStatus = "SLEEPER_BERTH"
	Driving          DutyStatus = "DRIVING"
	OnDutyNotDriving DutyStatus = "ON_DUTY_NOT_DRIVING"
)

// Short log-sheet abbreviation used in remarks ("Off", "SB", "D", "On").
func (s DutyStatus) Abbrev() string {
	switch s {
	case OffDuty:
		return "Off"
	case SleeperBerth:
		return "SB"
	case Driving:
		return "D"
	case OnDutyNotDriving:
		return "On"
	}
	return "?"
}

// OnDuty reports whether time in this status counts against the
// 14-hour window and the 70-hour cycle.
func (s DutyStatus) OnDuty() bool {
	return s == Driving || s == OnDutyNotDriving
}

func ParseDutyStatus(v string) (DutyStatus, error) {
	switch DutyStatus(v) {
	case OffDuty, SleeperBerth, Driving, OnDutyNotDriving:
		return DutyStatus(v), nil
	}
	return "", fmt.Errorf("parse duty status: unknown status %q", v)
}
