// exposes a Store interface that is passed to API modules and the executor
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pharos-signage/pharos/internal/model"
)

type Store interface {
	// screen functions
	CreateScreen(name string, location *string) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByDeviceID(deviceID *string) (model.Screen, error)
	ListScreens() ([]model.Screen, error)
	UpdateScreen(id int, name, location *string) error
	DeleteScreen(id int) error
	PairScreen(id int, deviceID *string) error

	// schedule functions
	GetScreenSchedule(screenID int) (model.Screen, error)
	AddScheduleEntry(screenID int, entry model.ScheduleEntry) (model.ScreenSchedule, error)
	UpdateScheduleEntry(screenID int, entry model.ScheduleEntry) (model.ScreenSchedule, error)
	RemoveScheduleEntry(screenID int, entryID string) (model.ScreenSchedule, error)

	// assignment write-back, used by the executor and by direct assignment
	UpdateScreenAssignment(screenID int, playlistID *string, startedAt *time.Time, current *model.ScheduleEntry) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
