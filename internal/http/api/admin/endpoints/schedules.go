package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/executor"
	"github.com/pharos-signage/pharos/internal/http/api"
	"github.com/pharos-signage/pharos/internal/http/api/admin/packets"
	"github.com/pharos-signage/pharos/internal/model"
	"github.com/pharos-signage/pharos/internal/schedule"
)

type ScheduleController struct {
	store db.Store
	exec  *executor.Executor
}

func newScheduleController(store db.Store, exec *executor.Executor) *ScheduleController {
	return &ScheduleController{store: store, exec: exec}
}

// ScheduleModule mounts the per-screen schedule endpoints. Every mutation
// reconciles the screen immediately so the active playlist reflects the edit
// without waiting for the next poll tick; reconciliation errors from these
// calls propagate to the client.
func ScheduleModule(store db.Store, exec *executor.Executor) api.Module {
	ctl := newScheduleController(store, exec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens/:id/schedule", ctl.getSchedule)
		c.POST("/screens/:id/schedule", ctl.addEntry)
		c.PUT("/screens/:id/schedule/:entryID", ctl.updateEntry)
		c.DELETE("/screens/:id/schedule/:entryID", ctl.removeEntry)
		c.POST("/screens/:id/schedule/reconcile", ctl.reconcile)
	})
}

func scheduleResponse(s model.ScreenSchedule) packets.ScheduleResponse {
	upcoming := s.Upcoming
	if upcoming == nil {
		upcoming = []model.ScheduleEntry{}
	}
	return packets.ScheduleResponse{Current: s.Current, Upcoming: upcoming}
}

func scheduleError(err error) *api.APIError {
	var verr schedule.ValidationError
	switch {
	case errors.As(err, &verr):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, db.ErrDuplicateEntry):
		return &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	case db.IsNotFound(err):
		return &api.APIError{Code: http.StatusNotFound, Message: err.Error()}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}

// GET /api/admin/screens/:id/schedule
func (t *ScheduleController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	screen, err := t.store.GetScreenSchedule(id)
	if err != nil {
		return nil, scheduleError(err)
	}
	return scheduleResponse(screen.Schedule), nil
}

// POST /api/admin/screens/:id/schedule
func (t *ScheduleController) addEntry(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.AddScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := schedule.ValidateEntry(request.PlaylistID, request.StartTime, request.EndTime, request.DaysOfWeek, request.Priority); err != nil {
		return nil, scheduleError(err)
	}

	entry := model.ScheduleEntry{
		ID:         uuid.NewString(),
		PlaylistID: request.PlaylistID,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		DaysOfWeek: request.DaysOfWeek,
		Priority:   request.Priority,
	}
	sched, err := t.store.AddScheduleEntry(id, entry)
	if err != nil {
		return nil, scheduleError(err)
	}

	if err := t.exec.Reconcile(ctx.Request.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	return t.freshSchedule(id, sched)
}

// PUT /api/admin/screens/:id/schedule/:entryID
func (t *ScheduleController) updateEntry(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := schedule.ValidateEntry(request.PlaylistID, request.StartTime, request.EndTime, request.DaysOfWeek, request.Priority); err != nil {
		return nil, scheduleError(err)
	}

	entry := model.ScheduleEntry{
		ID:         ctx.Param("entryID"),
		PlaylistID: request.PlaylistID,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		DaysOfWeek: request.DaysOfWeek,
		Priority:   request.Priority,
	}
	sched, err := t.store.UpdateScheduleEntry(id, entry)
	if err != nil {
		return nil, scheduleError(err)
	}

	if err := t.exec.Reconcile(ctx.Request.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	return t.freshSchedule(id, sched)
}

// DELETE /api/admin/screens/:id/schedule/:entryID
func (t *ScheduleController) removeEntry(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sched, err := t.store.RemoveScheduleEntry(id, ctx.Param("entryID"))
	if err != nil {
		return nil, scheduleError(err)
	}

	if err := t.exec.Reconcile(ctx.Request.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	return t.freshSchedule(id, sched)
}

// POST /api/admin/screens/:id/schedule/reconcile
func (t *ScheduleController) reconcile(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := screenID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := t.exec.Reconcile(ctx.Request.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	screen, err := t.store.GetScreenSchedule(id)
	if err != nil {
		return nil, scheduleError(err)
	}
	return screenResponse(screen), nil
}

// freshSchedule re-reads the schedule after a reconcile so the response
// carries the recomputed current entry rather than the pre-reconcile state.
func (t *ScheduleController) freshSchedule(id int, fallback model.ScreenSchedule) (any, *api.APIError) {
	screen, err := t.store.GetScreenSchedule(id)
	if err != nil {
		log.Warn().Err(err).Int("screen_id", id).Msg("failed to re-read schedule after reconcile")
		return scheduleResponse(fallback), nil
	}
	return scheduleResponse(screen.Schedule), nil
}
