package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/http/api"
	"github.com/pharos-signage/pharos/internal/model"
	redisclient "github.com/pharos-signage/pharos/internal/redis"
)

// deviceStore serves the device lookup; the polling endpoint touches nothing
// else on the store.
type deviceStore struct {
	screens map[string]model.Screen
	lookups int
}

func newDeviceStore(screens ...model.Screen) *deviceStore {
	s := &deviceStore{screens: make(map[string]model.Screen)}
	for _, scr := range screens {
		if scr.DeviceID != nil {
			s.screens[*scr.DeviceID] = scr
		}
	}
	return s
}

func (s *deviceStore) GetScreenByDeviceID(deviceID *string) (model.Screen, error) {
	s.lookups++
	if deviceID != nil {
		if scr, ok := s.screens[*deviceID]; ok {
			return scr, nil
		}
	}
	return model.Screen{}, db.ErrScreenNotFound
}

// unused Store surface
func (s *deviceStore) CreateScreen(string, *string) (model.Screen, error) { panic("not used") }
func (s *deviceStore) GetScreenByID(int) (model.Screen, error)            { panic("not used") }
func (s *deviceStore) ListScreens() ([]model.Screen, error)               { panic("not used") }
func (s *deviceStore) UpdateScreen(int, *string, *string) error           { panic("not used") }
func (s *deviceStore) DeleteScreen(int) error                             { panic("not used") }
func (s *deviceStore) PairScreen(int, *string) error                      { panic("not used") }
func (s *deviceStore) GetScreenSchedule(int) (model.Screen, error)        { panic("not used") }
func (s *deviceStore) AddScheduleEntry(int, model.ScheduleEntry) (model.ScreenSchedule, error) {
	panic("not used")
}
func (s *deviceStore) UpdateScheduleEntry(int, model.ScheduleEntry) (model.ScreenSchedule, error) {
	panic("not used")
}
func (s *deviceStore) RemoveScheduleEntry(int, string) (model.ScreenSchedule, error) {
	panic("not used")
}
func (s *deviceStore) UpdateScreenAssignment(int, *string, *time.Time, *model.ScheduleEntry) error {
	panic("not used")
}

var _ db.Store = (*deviceStore)(nil)

func newTestRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"}, ScreensModule(store))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCurrentPlaylistIncludesStartedAt(t *testing.T) {
	deviceID := "tv-1"
	playlist := "P1"
	started := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	store := newDeviceStore(model.Screen{
		ID:                       3,
		DeviceID:                 &deviceID,
		CurrentPlaylistID:        &playlist,
		CurrentPlaylistStartedAt: &started,
	})
	r := newTestRouter(store)

	w := get(t, r, "/api/tv/screens/current?device_id=tv-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"screen_id": 3, "playlist_id": "P1", "started_at": "2026-03-02T09:00:00Z"}`, w.Body.String())
	assert.Equal(t, 1, store.lookups)
}

func TestCurrentPlaylistNothingScheduled(t *testing.T) {
	deviceID := "tv-1"
	store := newDeviceStore(model.Screen{ID: 3, DeviceID: &deviceID})
	r := newTestRouter(store)

	w := get(t, r, "/api/tv/screens/current?device_id=tv-1")
	require.Equal(t, http.StatusOK, w.Code)
	// both fields stay present so clients never see the shape change
	assert.JSONEq(t, `{"screen_id": 3, "playlist_id": null, "started_at": null}`, w.Body.String())
}

func TestCurrentPlaylistUnknownDevice(t *testing.T) {
	store := newDeviceStore()
	r := newTestRouter(store)

	w := get(t, r, "/api/tv/screens/current?device_id=ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCurrentPlaylistMissingDeviceID(t *testing.T) {
	store := newDeviceStore()
	r := newTestRouter(store)

	w := get(t, r, "/api/tv/screens/current")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.lookups)
}

func TestCurrentPlaylistResponseFromCachedAssignment(t *testing.T) {
	playlist := "P2"
	started := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	resp := currentPlaylistResponse(redisclient.Assignment{ScreenID: 5, PlaylistID: &playlist, StartedAt: &started})
	assert.Equal(t, 5, resp.ScreenID)
	require.NotNil(t, resp.PlaylistID)
	assert.Equal(t, "P2", *resp.PlaylistID)
	require.NotNil(t, resp.StartedAt)
	assert.Equal(t, "2026-03-02T09:00:00Z", *resp.StartedAt)

	resp = currentPlaylistResponse(redisclient.Assignment{ScreenID: 5})
	assert.Nil(t, resp.PlaylistID)
	assert.Nil(t, resp.StartedAt)
}
