// Package executor keeps each screen's active playlist assignment in sync
// with its schedule, on demand and on a recurring timer.
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/model"
	"github.com/pharos-signage/pharos/internal/notify"
	"github.com/pharos-signage/pharos/internal/redis"
	"github.com/pharos-signage/pharos/internal/schedule"
)

// DefaultInterval is how often a screen's schedule is re-evaluated.
const DefaultInterval = 30 * time.Second

// Executor reconciles screens against their schedules. One poller goroutine
// runs per started screen; the registry guarantees at most one live poller
// per screen id.
type Executor struct {
	store    db.Store
	clock    schedule.Clock
	notifier notify.Notifier
	interval time.Duration

	mu      sync.Mutex
	pollers map[int]*poller
}

type poller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store db.Store, clock schedule.Clock, notifier notify.Notifier, interval time.Duration) *Executor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Executor{
		store:    store,
		clock:    clock,
		notifier: notifier,
		interval: interval,
		pollers:  make(map[int]*poller),
	}
}

// Reconcile re-derives the screen's current playlist from its upcoming
// entries and writes the assignment back only when it changed. Safe to call
// at any time; a no-change call issues zero writes.
func (e *Executor) Reconcile(ctx context.Context, screenID int) error {
	screen, err := e.store.GetScreenSchedule(screenID)
	if err != nil {
		return err
	}

	// A screen with no entries must not keep a stale active playlist,
	// including one assigned manually.
	if len(screen.Schedule.Upcoming) == 0 {
		if screen.CurrentPlaylistID == nil {
			return nil
		}
		return e.apply(ctx, screen, nil)
	}

	resolved := schedule.Resolve(screen.Schedule.Upcoming, e.clock.Now())

	if assignmentUnchanged(screen.CurrentPlaylistID, resolved) {
		return nil
	}
	return e.apply(ctx, screen, resolved)
}

func assignmentUnchanged(current *string, resolved *model.ScheduleEntry) bool {
	if current == nil {
		return resolved == nil
	}
	return resolved != nil && resolved.PlaylistID == *current
}

// Assign writes a manual, schedule-bypassing playlist assignment. It goes
// through the same write/cache/notify path as a schedule resolution, so a
// paired device sees a manual change exactly like a scheduled one. The next
// reconciliation of a screen with any entries re-derives the assignment from
// the schedule, overriding the manual value (to nil when no window matches).
func (e *Executor) Assign(ctx context.Context, screenID int, playlistID *string) error {
	screen, err := e.store.GetScreenSchedule(screenID)
	if err != nil {
		return err
	}
	var startedAt *time.Time
	if playlistID != nil {
		now := e.clock.Now()
		startedAt = &now
	}
	return e.commit(ctx, screen, playlistID, startedAt, nil)
}

func (e *Executor) apply(ctx context.Context, screen model.Screen, resolved *model.ScheduleEntry) error {
	var playlistID *string
	var startedAt *time.Time
	if resolved != nil {
		playlistID = &resolved.PlaylistID
		now := e.clock.Now()
		startedAt = &now
	}
	return e.commit(ctx, screen, playlistID, startedAt, resolved)
}

// commit writes the new assignment and tells the playback side about it.
// Notification and cache refresh are best effort; the write is the source
// of truth and devices poll it.
func (e *Executor) commit(ctx context.Context, screen model.Screen, playlistID *string, startedAt *time.Time, current *model.ScheduleEntry) error {
	if err := e.store.UpdateScreenAssignment(screen.ID, playlistID, startedAt, current); err != nil {
		return err
	}

	log.Info().
		Int("screen_id", screen.ID).
		Interface("playlist_id", playlistID).
		Msg("screen playlist assignment changed")

	if screen.DeviceID != nil {
		redis.SetCurrentPlaylist(ctx, *screen.DeviceID, redis.Assignment{
			ScreenID:   screen.ID,
			PlaylistID: playlistID,
			StartedAt:  startedAt,
		}, redis.AssignmentTTL)

		if err := e.notifier.PlaylistChanged(*screen.DeviceID, playlistID, startedAt); err != nil {
			log.Error().Err(err).Int("screen_id", screen.ID).Msg("failed to notify device of playlist change")
		}
	}
	return nil
}

// Start launches the recurring reconciliation for a screen: one immediate
// pass, then one per interval. Starting an already started screen replaces
// the previous poller, waiting for it to fully exit first so two pollers
// never reconcile the same screen concurrently. Pollers outlive the request
// that started them; they end via Stop or StopAll.
func (e *Executor) Start(screenID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prev, ok := e.pollers[screenID]; ok {
		prev.cancel()
		<-prev.done
	}
	pollCtx, cancel := context.WithCancel(context.Background())
	p := &poller{cancel: cancel, done: make(chan struct{})}
	e.pollers[screenID] = p

	go e.run(pollCtx, screenID, p.done)
}

// Stop cancels the poller for a screen, if any, and returns once it has
// exited.
func (e *Executor) Stop(screenID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.pollers[screenID]; ok {
		p.cancel()
		<-p.done
		delete(e.pollers, screenID)
	}
}

// StopAll cancels every live poller and waits for them. Called on shutdown.
func (e *Executor) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, p := range e.pollers {
		p.cancel()
		<-p.done
		delete(e.pollers, id)
	}
}

// Polling reports whether a poller is live for the screen.
func (e *Executor) Polling(screenID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pollers[screenID]
	return ok
}

// run is the per-screen poll loop. Each tick runs one reconciliation to
// completion before the next is considered, so writes for a screen never
// race each other. Tick failures are logged and retried next tick.
func (e *Executor) run(ctx context.Context, screenID int, done chan struct{}) {
	defer close(done)

	if err := e.Reconcile(ctx, screenID); err != nil {
		log.Warn().Err(err).Int("screen_id", screenID).Msg("initial reconciliation failed")
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	log.Info().Int("screen_id", screenID).Dur("interval", e.interval).Msg("schedule poller started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("screen_id", screenID).Msg("schedule poller stopped")
			return
		case <-ticker.C:
			if err := e.Reconcile(ctx, screenID); err != nil {
				log.Warn().Err(err).Int("screen_id", screenID).Msg("reconciliation failed")
			}
		}
	}
}
