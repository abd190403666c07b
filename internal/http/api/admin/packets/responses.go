package packets

import "github.com/pharos-signage/pharos/internal/model"

// ScreenResponse mirrors model.Screen but flattens times to RFC3339
type ScreenResponse struct {
	ID                       int     `json:"id"`
	DeviceID                 *string `json:"device_id"`
	Name                     string  `json:"name"`
	Location                 *string `json:"location"`
	Paired                   bool    `json:"paired"`
	CurrentPlaylist          *string `json:"current_playlist"`
	CurrentPlaylistStartedAt *string `json:"current_playlist_started_at"`
	CreatedAt                string  `json:"created_at"`
	UpdatedAt                string  `json:"updated_at"`
}

type ScheduleResponse struct {
	Current  *model.ScheduleEntry  `json:"current"`
	Upcoming []model.ScheduleEntry `json:"upcoming"`
}
