package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharos-signage/pharos/internal/model"
)

func TestScheduleDocRoundTrip(t *testing.T) {
	current := model.ScheduleEntry{
		ID: "e1", PlaylistID: "P1", StartTime: "08:00", EndTime: "12:00",
		DaysOfWeek: []string{"Monday"}, Priority: 1,
	}
	sched := model.ScreenSchedule{
		Current: &current,
		Upcoming: []model.ScheduleEntry{
			current,
			{ID: "e2", PlaylistID: "P2", StartTime: "13:00", EndTime: "17:00",
				DaysOfWeek: []string{"Tuesday", "Friday"}, Priority: 3},
		},
	}

	got := fromScheduleDoc(toScheduleDoc(sched))
	assert.Equal(t, sched, got)
}

func TestScheduleDocFieldNames(t *testing.T) {
	doc := toScheduleDoc(model.ScreenSchedule{
		Upcoming: []model.ScheduleEntry{{
			ID: "e1", PlaylistID: "P1", StartTime: "08:00", EndTime: "12:00",
			DaysOfWeek: []string{"Monday"}, Priority: 2,
		}},
	})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	// the persisted shape is the contract with existing stored data
	assert.JSONEq(t, `{
		"current": null,
		"upcoming": [{
			"id": "e1",
			"playlist_id": "P1",
			"start_time": "08:00",
			"end_time": "12:00",
			"days_of_week": ["Monday"],
			"priority": 2
		}]
	}`, string(raw))
}

func TestScheduleDocParsesLegacyEntriesWithoutIDs(t *testing.T) {
	raw := []byte(`{
		"current": null,
		"upcoming": [{
			"playlist_id": "P1",
			"start_time": "08:00",
			"end_time": "12:00",
			"days_of_week": ["Monday"],
			"priority": 1
		}]
	}`)

	var doc scheduleDoc
	require.NoError(t, json.Unmarshal(raw, &doc))

	sched := fromScheduleDoc(doc)
	require.Len(t, sched.Upcoming, 1)
	assert.Empty(t, sched.Upcoming[0].ID)
	assert.Equal(t, "P1", sched.Upcoming[0].PlaylistID)
}

func TestMatchesEntry(t *testing.T) {
	withID := model.ScheduleEntry{ID: "e1", PlaylistID: "P1", StartTime: "08:00"}
	legacy := model.ScheduleEntry{PlaylistID: "P1", StartTime: "08:00"}

	incoming := model.ScheduleEntry{ID: "e1", PlaylistID: "P1", StartTime: "09:00"}
	assert.True(t, matchesEntry(withID, "e1", incoming))
	assert.False(t, matchesEntry(withID, "other", incoming))

	// legacy rows fall back to the (playlist_id, start_time) composite
	composite := model.ScheduleEntry{PlaylistID: "P1", StartTime: "08:00"}
	assert.True(t, matchesEntry(legacy, "", composite))
	assert.False(t, matchesEntry(legacy, "", model.ScheduleEntry{PlaylistID: "P1", StartTime: "10:00"}))
}
