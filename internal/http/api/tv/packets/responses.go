package packets

// CurrentPlaylistResponse is what a playback device polls for: the playlist
// it should be showing right now, or null when nothing is scheduled.
type CurrentPlaylistResponse struct {
	ScreenID   int     `json:"screen_id"`
	PlaylistID *string `json:"playlist_id"`
	StartedAt  *string `json:"started_at"`
}
