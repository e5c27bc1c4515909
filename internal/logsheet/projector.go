// Package logsheet projects a trip schedule onto daily driver-log
// records: one record per 24-hour calendar day touched by the
// schedule, with entries split at midnight, per-status hour totals,
// miles driven, and remark lines. It is a pure consumer of the
// scheduler's output; rendering the records (paper grid, PNG, UI) is
// someone else's concern.
package logsheet

import (
	"fmt"
	"time"

	"hos-trip-planner/internal/domain"
)

// DailyLog is one driver's-daily-log record.
type DailyLog struct {
	Date      string // YYYY-MM-DD in the projection zone
	DayNumber int    // 1-based day of the trip
	Entries   []domain.ScheduleEntry
	Totals    DailyTotals
	Remarks   []string
}

// DailyTotals are the per-status hour sums for one day, plus the miles
// driven that day. The four hour buckets sum to at most 24.
type DailyTotals struct {
	DrivingHours float64
	OnDutyHours  float64
	OffDutyHours float64
	SleeperHours float64
	Miles        float64
}

// Project groups schedule entries by calendar day in the given zone.
// Entries spanning midnight are split proportionally, both in duration
// and in odometer position, so each day's record is self-contained.
// The scheduler deliberately does not pre-split; splitting is a
// rendering concern and lives here.
func Project(entries []domain.ScheduleEntry, zone *time.Location) []DailyLog {
	if zone == nil {
		zone = time.UTC
	}
	if len(entries) == 0 {
		return nil
	}

	var days []DailyLog
	byDate := make(map[string]int) // date -> index into days

	for _, e := range entries {
		for _, seg := range splitAtMidnight(e, zone) {
			date := seg.Start.In(zone).Format("2006-01-02")
			idx, ok := byDate[date]
			if !ok {
				idx = len(days)
				byDate[date] = idx
				days = append(days, DailyLog{Date: date, DayNumber: idx + 1})
			}
			day := &days[idx]
			day.Entries = append(day.Entries, seg)
			day.Totals.add(seg)
			day.Remarks = append(day.Remarks, remark(seg, zone))
		}
	}

	return days
}

// splitAtMidnight cuts an entry at each midnight it crosses, allocating
// miles linearly over the driving time.
func splitAtMidnight(e domain.ScheduleEntry, zone *time.Location) []domain.ScheduleEntry {
	total := e.End.Sub(e.Start)
	if total <= 0 {
		return nil
	}

	var segs []domain.ScheduleEntry
	cur := e.Start
	for cur.Before(e.End) {
		local := cur.In(zone)
		y, m, d := local.Date()
		dayEnd := time.Date(y, m, d, 0, 0, 0, 0, zone).AddDate(0, 0, 1)

		segEnd := e.End
		if dayEnd.Before(segEnd) {
			segEnd = dayEnd
		}

		milesSpan := e.MilesEnd - e.MilesStart
		startFrac := float64(cur.Sub(e.Start)) / float64(total)
		endFrac := float64(segEnd.Sub(e.Start)) / float64(total)

		segs = append(segs, domain.ScheduleEntry{
			Status:     e.Status,
			Start:      cur,
			End:        segEnd,
			MilesStart: e.MilesStart + milesSpan*startFrac,
			MilesEnd:   e.MilesStart + milesSpan*endFrac,
			Note:       e.Note,
		})
		cur = segEnd
	}
	return segs
}

func (t *DailyTotals) add(e domain.ScheduleEntry) {
	h := e.DurationHours()
	switch e.Status {
	case domain.Driving:
		t.DrivingHours += h
		t.Miles += e.MilesEnd - e.MilesStart
	case domain.OnDutyNotDriving:
		t.OnDutyHours += h
	case domain.OffDuty:
		t.OffDutyHours += h
	case domain.SleeperBerth:
		t.SleeperHours += h
	}
}

// remark renders one log-sheet remark line: local time, status
// abbreviation, and the entry's note.
func remark(e domain.ScheduleEntry, zone *time.Location) string {
	line := fmt.Sprintf("%s %s", e.Start.In(zone).Format("15:04"), e.Status.Abbrev())
	if e.Note != "" {
		line += " - " + e.Note
	}
	return line
}
