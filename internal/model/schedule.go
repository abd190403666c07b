package model

// ScheduleEntry is a single day/time/priority-scoped rule assigning a
// playlist to a screen. Times are local "HH:MM" 24-hour strings; the window
// is inclusive on both bounds. Lower Priority wins when windows overlap.
type ScheduleEntry struct {
	ID         string   `json:"id"`
	PlaylistID string   `json:"playlist_id"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	DaysOfWeek []string `json:"days_of_week"`
	Priority   int      `json:"priority"`
}

// SameAssignment reports whether two entries describe the same playlist
// assignment. Used for the legacy (playlist_id, start_time) composite match
// on rows created before entries carried generated IDs.
func (e ScheduleEntry) SameAssignment(other ScheduleEntry) bool {
	return e.PlaylistID == other.PlaylistID && e.StartTime == other.StartTime
}

// ScreenSchedule is the per-screen schedule aggregate. Current caches the
// last resolution result and is re-derived from Upcoming on every
// reconciliation; Upcoming holds every entry ever added for the screen
// regardless of whether its window is presently open (entries recur on
// their configured days).
type ScreenSchedule struct {
	Current  *ScheduleEntry  `json:"current"`
	Upcoming []ScheduleEntry `json:"upcoming"`
}
