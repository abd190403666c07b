package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/pharos-signage/pharos/internal/model"
)

// scheduleDoc is the persisted shape of a screen's schedule. The backend
// column is JSONB; all field-name translation between the stored shape and
// the model happens here and nowhere else.
type scheduleDoc struct {
	Current  *entryDoc  `json:"current"`
	Upcoming []entryDoc `json:"upcoming"`
}

type entryDoc struct {
	ID         string   `json:"id,omitempty"`
	PlaylistID string   `json:"playlist_id"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	DaysOfWeek []string `json:"days_of_week"`
	Priority   int      `json:"priority"`
}

func toEntryDoc(e model.ScheduleEntry) entryDoc {
	return entryDoc(e)
}

func fromEntryDoc(d entryDoc) model.ScheduleEntry {
	return model.ScheduleEntry(d)
}

func toScheduleDoc(s model.ScreenSchedule) scheduleDoc {
	doc := scheduleDoc{Upcoming: make([]entryDoc, 0, len(s.Upcoming))}
	if s.Current != nil {
		d := toEntryDoc(*s.Current)
		doc.Current = &d
	}
	for _, e := range s.Upcoming {
		doc.Upcoming = append(doc.Upcoming, toEntryDoc(e))
	}
	return doc
}

func fromScheduleDoc(doc scheduleDoc) model.ScreenSchedule {
	out := model.ScreenSchedule{Upcoming: make([]model.ScheduleEntry, 0, len(doc.Upcoming))}
	if doc.Current != nil {
		e := fromEntryDoc(*doc.Current)
		out.Current = &e
	}
	for _, d := range doc.Upcoming {
		out.Upcoming = append(out.Upcoming, fromEntryDoc(d))
	}
	return out
}

// GetScreenSchedule loads a screen together with its parsed schedule.
func (s *pgStore) GetScreenSchedule(screenID int) (model.Screen, error) {
	screen, err := s.GetScreenByID(screenID)
	if err != nil {
		return model.Screen{}, err
	}

	var raw []byte
	err = s.db.Get(&raw, `SELECT schedule FROM screens WHERE id = $1`, screenID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Screen{}, ErrScreenNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to load screen schedule")
		return model.Screen{}, err
	}

	var doc scheduleDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Error().Err(err).Int("screen_id", screenID).Msg("malformed schedule document")
			return model.Screen{}, err
		}
	}
	screen.Schedule = fromScheduleDoc(doc)
	return screen, nil
}

func (s *pgStore) writeSchedule(screenID int, sched model.ScreenSchedule) error {
	raw, err := json.Marshal(toScheduleDoc(sched))
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE screens
		SET schedule = $2,
		updated_at = now()
		WHERE id = $1
		`, screenID, raw)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to write screen schedule")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

// AddScheduleEntry appends a new entry to the screen's upcoming set. Entries
// colliding on the legacy (playlist_id, start_time) composite are rejected:
// that pair is still the identity for rows that predate generated IDs, so a
// duplicate would make edit and delete ambiguous.
func (s *pgStore) AddScheduleEntry(screenID int, entry model.ScheduleEntry) (model.ScreenSchedule, error) {
	screen, err := s.GetScreenSchedule(screenID)
	if err != nil {
		return model.ScreenSchedule{}, err
	}
	for _, e := range screen.Schedule.Upcoming {
		if e.SameAssignment(entry) {
			return model.ScreenSchedule{}, ErrDuplicateEntry
		}
	}
	screen.Schedule.Upcoming = append(screen.Schedule.Upcoming, entry)
	if err := s.writeSchedule(screenID, screen.Schedule); err != nil {
		return model.ScreenSchedule{}, err
	}
	return screen.Schedule, nil
}

// UpdateScheduleEntry replaces the entry matching entry.ID in place. Entries
// stored before IDs existed are matched by the legacy composite key.
func (s *pgStore) UpdateScheduleEntry(screenID int, entry model.ScheduleEntry) (model.ScreenSchedule, error) {
	screen, err := s.GetScreenSchedule(screenID)
	if err != nil {
		return model.ScreenSchedule{}, err
	}
	found := false
	for i, e := range screen.Schedule.Upcoming {
		if matchesEntry(e, entry.ID, entry) {
			screen.Schedule.Upcoming[i] = entry
			found = true
			break
		}
	}
	if !found {
		return model.ScreenSchedule{}, ErrEntryNotFound
	}
	if err := s.writeSchedule(screenID, screen.Schedule); err != nil {
		return model.ScreenSchedule{}, err
	}
	return screen.Schedule, nil
}

// RemoveScheduleEntry filters the entry with the given id out of upcoming.
func (s *pgStore) RemoveScheduleEntry(screenID int, entryID string) (model.ScreenSchedule, error) {
	screen, err := s.GetScreenSchedule(screenID)
	if err != nil {
		return model.ScreenSchedule{}, err
	}
	kept := screen.Schedule.Upcoming[:0]
	removed := false
	for _, e := range screen.Schedule.Upcoming {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return model.ScreenSchedule{}, ErrEntryNotFound
	}
	screen.Schedule.Upcoming = kept
	if err := s.writeSchedule(screenID, screen.Schedule); err != nil {
		return model.ScreenSchedule{}, err
	}
	return screen.Schedule, nil
}

// UpdateScreenAssignment writes the resolved playlist assignment: the
// current_playlist columns the playback side reads, and schedule.current,
// kept in lockstep so one is nil exactly when the other is.
func (s *pgStore) UpdateScreenAssignment(screenID int, playlistID *string, startedAt *time.Time, current *model.ScheduleEntry) error {
	screen, err := s.GetScreenSchedule(screenID)
	if err != nil {
		return err
	}
	screen.Schedule.Current = current

	raw, err := json.Marshal(toScheduleDoc(screen.Schedule))
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE screens
		SET current_playlist = $2,
		current_playlist_started_at = $3,
		schedule = $4,
		updated_at = now()
		WHERE id = $1
		`, screenID, playlistID, startedAt, raw)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to update screen assignment")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

// matchesEntry matches by generated id when both sides have one, otherwise
// falls back to the legacy (playlist_id, start_time) composite.
func matchesEntry(stored model.ScheduleEntry, id string, incoming model.ScheduleEntry) bool {
	if stored.ID != "" && id != "" {
		return stored.ID == id
	}
	return stored.SameAssignment(incoming)
}
