// Package notify pushes playlist assignment changes to playback devices.
package notify

import "time"

// Notifier tells a playback device that its assignment changed. A failed
// notification never fails the reconciliation that triggered it; devices
// also poll, so a missed push heals on its own.
type Notifier interface {
	PlaylistChanged(deviceID string, playlistID *string, startedAt *time.Time) error
}

// Noop discards notifications. Used when no broker is configured and in
// tests.
type Noop struct{}

func (Noop) PlaylistChanged(string, *string, *time.Time) error { return nil }
