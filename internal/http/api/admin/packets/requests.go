package packets

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateScreenRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

type PairScreenRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// AddScheduleEntryRequest carries a new schedule entry for a screen. Times
// are local "HH:MM"; days are full weekday names; lower priority wins.
type AddScheduleEntryRequest struct {
	PlaylistID string   `json:"playlist_id" binding:"required"`
	StartTime  string   `json:"start_time"  binding:"required"`
	EndTime    string   `json:"end_time"    binding:"required"`
	DaysOfWeek []string `json:"days_of_week"`
	Priority   int      `json:"priority"    binding:"required"`
}

// UpdateScheduleEntryRequest replaces an entry in place; all fields are
// required because the entry is stored whole.
type UpdateScheduleEntryRequest struct {
	PlaylistID string   `json:"playlist_id" binding:"required"`
	StartTime  string   `json:"start_time"  binding:"required"`
	EndTime    string   `json:"end_time"    binding:"required"`
	DaysOfWeek []string `json:"days_of_week"`
	Priority   int      `json:"priority"    binding:"required"`
}

// AssignPlaylistRequest is the manual (schedule-bypassing) assignment. A nil
// playlist id clears the assignment. The next reconciliation overrides it
// whenever a schedule window matches.
type AssignPlaylistRequest struct {
	PlaylistID *string `json:"playlist_id"`
}
