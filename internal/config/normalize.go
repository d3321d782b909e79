// internal/config/normalize.go
package config

import "strings"

const (
	defaultIntervalS = 60
	defaultTimeoutMs = 10000

	defaultPriorityLive     = 5
	defaultPriorityOffline  = 3
	defaultPriorityStartup  = 1
	defaultPriorityExisting = 4
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	w := &cfg.Watch

	// ------------------------------------------------------------
	// CHANNEL LOGINS (lowercase, dedupe, keep order)
	// ------------------------------------------------------------

	seen := make(map[string]struct{}, len(w.Channels))
	channels := w.Channels[:0]
	for _, c := range w.Channels {
		c = strings.ToLower(c)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		channels = append(channels, c)
	}
	w.Channels = channels

	// ------------------------------------------------------------
	// DEFAULTS
	// ------------------------------------------------------------

	if w.Poll.IntervalS == 0 {
		w.Poll.IntervalS = defaultIntervalS
	}
	if w.Twitch.TimeoutMs == 0 {
		w.Twitch.TimeoutMs = defaultTimeoutMs
	}

	n := &w.Notify
	if n.OnOffline == nil {
		n.OnOffline = boolPtr(true)
	}
	if n.AnnounceExisting == nil {
		n.AnnounceExisting = boolPtr(true)
	}
	if n.StartupTest == nil {
		n.StartupTest = boolPtr(true)
	}

	if n.Priorities.Live == 0 {
		n.Priorities.Live = defaultPriorityLive
	}
	if n.Priorities.Offline == 0 {
		n.Priorities.Offline = defaultPriorityOffline
	}
	if n.Priorities.Startup == 0 {
		n.Priorities.Startup = defaultPriorityStartup
	}
	if n.Priorities.Existing == 0 {
		n.Priorities.Existing = defaultPriorityExisting
	}

	if n.Gotify != nil {
		n.Gotify.URL = strings.TrimRight(n.Gotify.URL, "/")
	}
}

func boolPtr(b bool) *bool { return &b }
