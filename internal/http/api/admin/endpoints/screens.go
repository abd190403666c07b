package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/executor"
	"github.com/pharos-signage/pharos/internal/http/api"
	"github.com/pharos-signage/pharos/internal/http/api/admin/packets"
	"github.com/pharos-signage/pharos/internal/model"
)

type ScreenController struct {
	store db.Store
	exec  *executor.Executor
}

func newScreenController(store db.Store, exec *executor.Executor) *ScreenController {
	return &ScreenController{store: store, exec: exec}
}

// ScreenModule mounts the /screens endpoints.
func ScreenModule(store db.Store, exec *executor.Executor) api.Module {
	ctl := newScreenController(store, exec)
	return api.ModuleFunc(func(c *api.Controller) {
		// CRUD
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
		c.PUT("/screens/:id", ctl.updateScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)

		// pairing & manual playlist assignment
		c.POST("/screens/:id/pair", ctl.pairScreen)
		c.POST("/screens/:id/playlist", ctl.assignPlaylistToScreen)
	})
}

func screenResponse(s model.Screen) packets.ScreenResponse {
	var startedAt *string
	if s.CurrentPlaylistStartedAt != nil {
		v := s.CurrentPlaylistStartedAt.Format(time.RFC3339)
		startedAt = &v
	}
	return packets.ScreenResponse{
		ID:                       s.ID,
		DeviceID:                 s.DeviceID,
		Name:                     s.Name,
		Location:                 s.Location,
		Paired:                   s.Paired,
		CurrentPlaylist:          s.CurrentPlaylistID,
		CurrentPlaylistStartedAt: startedAt,
		CreatedAt:                s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                s.UpdatedAt.Format(time.RFC3339),
	}
}

func screenID(ctx *gin.Context) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	return id, nil
}

func storeError(err error) *api.APIError {
	if db.IsNotFound(err) {
		return &api.APIError{Code: http.StatusNotFound, Message: err.Error()}
	}
	return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
}

// GET /api/admin/screens
func (t *ScreenController) listScreens(ctx *gin.Context) (any, *api.APIError) {
	all, err := t.store.ListScreens()
	if err != nil {
		return nil, storeError(err)
	}

	out := make([]packets.ScreenResponse, 0, len(all))
	for _, s := range all {
		out = append(out, screenResponse(s))
	}
	return out, nil
}

// POST /api/admin/screens
func (t *ScreenController) createScreen(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := t.store.CreateScreen(request.Name, request.Location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return screenResponse(screen), nil
}

// GET /api/admin/screens/:id
func (t *ScreenController) getScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, storeError(err)
	}
	return screenResponse(screen), nil
}

// PUT /api/admin/screens/:id
func (t *ScreenController) updateScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.store.UpdateScreen(id, request.Name, request.Location); err != nil {
		return nil, storeError(err)
	}
	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, storeError(err)
	}
	return screenResponse(screen), nil
}

// DELETE /api/admin/screens/:id
// Deleting a screen also tears down its schedule poller.
func (t *ScreenController) deleteScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := t.store.DeleteScreen(id); err != nil {
		return nil, storeError(err)
	}
	t.exec.Stop(id)
	return gin.H{"deleted": id}, nil
}

// POST /api/admin/screens/:id/pair
// Pairing attaches a device and starts the schedule poller for the screen.
func (t *ScreenController) pairScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.PairScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.store.PairScreen(id, &request.DeviceID); err != nil {
		return nil, storeError(err)
	}
	t.exec.Start(id)

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, storeError(err)
	}
	return screenResponse(screen), nil
}

// POST /api/admin/screens/:id/playlist
// Manual assignment bypasses the resolver but shares the executor's
// write/cache/notify path, so paired devices pick it up immediately. The
// next reconciliation of a screen with any entries re-derives the assignment
// from the schedule, replacing the manual value (with nil when no window
// matches).
func (t *ScreenController) assignPlaylistToScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.AssignPlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.exec.Assign(ctx.Request.Context(), id, request.PlaylistID); err != nil {
		return nil, storeError(err)
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, storeError(err)
	}
	return screenResponse(screen), nil
}
