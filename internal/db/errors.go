package db

import "errors"

var (
	// ErrScreenNotFound is returned when a screen id or device id does not
	// resolve to a record.
	ErrScreenNotFound = errors.New("screen not found")

	// ErrEntryNotFound is returned when a schedule entry id does not exist
	// in the screen's schedule.
	ErrEntryNotFound = errors.New("schedule entry not found")

	// ErrDuplicateEntry is returned when adding an entry that collides with
	// an existing one on the (playlist_id, start_time) composite key.
	ErrDuplicateEntry = errors.New("schedule entry already exists")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScreenNotFound) || errors.Is(err, ErrEntryNotFound)
}
