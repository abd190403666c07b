package schedule

import (
	"fmt"
	"regexp"
)

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]struct{}{
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
	"Saturday":  {},
	"Sunday":    {},
}

// ValidationError describes a schedule entry rejected before it reaches the
// stored schedule. Resolution itself never validates; a malformed entry that
// slipped into storage simply never matches.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid schedule entry %s: %s", e.Field, e.Reason)
}

// ValidateEntry checks the fields a user can author. It accepts windows with
// EndTime before StartTime: those exist in legacy data and are valid input
// that never matches, so rejecting them here would change stored behavior.
func ValidateEntry(playlistID, startTime, endTime string, daysOfWeek []string, priority int) error {
	if playlistID == "" {
		return ValidationError{Field: "playlist_id", Reason: "must not be empty"}
	}
	if !timeOfDay.MatchString(startTime) {
		return ValidationError{Field: "start_time", Reason: "must be HH:MM in 24-hour format"}
	}
	if !timeOfDay.MatchString(endTime) {
		return ValidationError{Field: "end_time", Reason: "must be HH:MM in 24-hour format"}
	}
	if priority < 1 {
		return ValidationError{Field: "priority", Reason: "must be a positive integer"}
	}
	for _, d := range daysOfWeek {
		if _, ok := weekdayNames[d]; !ok {
			return ValidationError{Field: "days_of_week", Reason: fmt.Sprintf("unknown day name %q", d)}
		}
	}
	return nil
}
