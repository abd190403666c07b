// Package schedule decides which playlist a screen should be showing at a
// given instant, based on the screen's day/time/priority scoped entries.
package schedule

import (
	"sort"
	"time"

	"github.com/pharos-signage/pharos/internal/model"
)

// Resolve returns the schedule entry active at now, or nil when no entry
// matches. An entry matches when its DaysOfWeek contains now's weekday name
// and its [StartTime, EndTime] window contains now's "HH:MM" time, inclusive
// on both bounds. Among matching entries the lowest Priority wins; ties break
// on the earlier StartTime, then on input order (the sort is stable), so the
// result is deterministic for a given input.
//
// Windows with EndTime before StartTime never match: the comparison is a
// plain string compare with no midnight wraparound. Entries authored that way
// in existing data are silently inactive rather than rejected.
//
// Resolve never fails. Malformed time strings or unknown day names simply
// never match.
func Resolve(entries []model.ScheduleEntry, now time.Time) *model.ScheduleEntry {
	weekday := now.Weekday().String()
	clock := now.Format("15:04")

	var candidates []model.ScheduleEntry
	for _, e := range entries {
		if !containsDay(e.DaysOfWeek, weekday) {
			continue
		}
		if clock < e.StartTime || clock > e.EndTime {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return candidates[i].StartTime < candidates[j].StartTime
	})

	return &candidates[0]
}

func containsDay(days []string, weekday string) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
