package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// AssignmentTTL bounds how stale a cached assignment can get when a refresh
// is missed.
const AssignmentTTL = 5 * time.Minute

// Assignment is the cached answer to a device poll: everything the TV
// endpoint needs to respond without touching postgres.
type Assignment struct {
	ScreenID   int        `json:"screen_id"`
	PlaylistID *string    `json:"playlist_id"`
	StartedAt  *time.Time `json:"started_at"`
}

func deviceKey(deviceID string) string {
	return fmt.Sprintf("device:%s:current_playlist", deviceID)
}

// SetCurrentPlaylist caches a device's active assignment so the TV polling
// endpoint doesn't hit postgres every tick. Keyed by device id because that
// is all a polling device sends.
func SetCurrentPlaylist(ctx context.Context, deviceID string, a Assignment, ttl time.Duration) {
	if Rdb == nil || deviceID == "" {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("failed to encode cached assignment")
		return
	}
	if err := Rdb.Set(ctx, deviceKey(deviceID), raw, ttl).Err(); err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("failed to cache current playlist")
	}
}

// GetCurrentPlaylist returns the cached assignment for a device. The second
// return is false on a miss (or when redis is not configured); a cached nil
// playlist id means "nothing scheduled" and is still a hit.
func GetCurrentPlaylist(ctx context.Context, deviceID string) (Assignment, bool) {
	if Rdb == nil {
		return Assignment{}, false
	}
	raw, err := Rdb.Get(ctx, deviceKey(deviceID)).Bytes()
	if err != nil {
		return Assignment{}, false
	}
	var a Assignment
	if err := json.Unmarshal(raw, &a); err != nil {
		log.Warn().Err(err).Str("device_id", deviceID).Msg("malformed cached assignment, treating as miss")
		return Assignment{}, false
	}
	return a, true
}
