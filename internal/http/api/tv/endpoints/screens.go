package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/http/api"
	"github.com/pharos-signage/pharos/internal/http/api/tv/packets"
	redisclient "github.com/pharos-signage/pharos/internal/redis"
)

type TvController struct {
	store db.Store
}

func newTvController(store db.Store) *TvController {
	return &TvController{store: store}
}

// ScreensModule mounts the device-facing polling endpoint.
func ScreensModule(store db.Store) api.Module {
	ctl := newTvController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens/current", ctl.currentPlaylist)
	})
}

// GET /api/tv/screens/current?device_id=...
// A warm cache hit answers without touching the store; a miss reads the
// screen row and warms the cache for subsequent polls. Devices poll this
// alongside the MQTT push so a missed push self-corrects.
func (t *TvController) currentPlaylist(ctx *gin.Context) (any, *api.APIError) {
	deviceID := ctx.Query("device_id")
	if deviceID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "device_id is required"}
	}

	if cached, ok := redisclient.GetCurrentPlaylist(ctx.Request.Context(), deviceID); ok {
		return currentPlaylistResponse(cached), nil
	}

	screen, err := t.store.GetScreenByDeviceID(&deviceID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown device"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	assignment := redisclient.Assignment{
		ScreenID:   screen.ID,
		PlaylistID: screen.CurrentPlaylistID,
		StartedAt:  screen.CurrentPlaylistStartedAt,
	}
	redisclient.SetCurrentPlaylist(ctx.Request.Context(), deviceID, assignment, redisclient.AssignmentTTL)
	return currentPlaylistResponse(assignment), nil
}

func currentPlaylistResponse(a redisclient.Assignment) packets.CurrentPlaylistResponse {
	var startedAt *string
	if a.StartedAt != nil {
		v := a.StartedAt.Format(time.RFC3339)
		startedAt = &v
	}
	return packets.CurrentPlaylistResponse{
		ScreenID:   a.ScreenID,
		PlaylistID: a.PlaylistID,
		StartedAt:  startedAt,
	}
}
