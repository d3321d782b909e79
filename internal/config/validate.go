// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"regexp"
)

// Twitch logins: 1-25 word characters. Case is handled in Normalize.
var loginRE = regexp.MustCompile(`^[A-Za-z0-9_]{1,25}$`)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	w := cfg.Watch

	// ------------------------------------------------------------
	// CHANNELS
	// ------------------------------------------------------------

	if len(w.Channels) == 0 {
		return fmt.Errorf("config: at least one channel is required")
	}
	for _, c := range w.Channels {
		if !loginRE.MatchString(c) {
			return fmt.Errorf("config: invalid channel login %q", c)
		}
	}

	// ------------------------------------------------------------
	// POLL / TWITCH
	// ------------------------------------------------------------

	if w.Poll.IntervalS < 0 {
		return fmt.Errorf("config: poll interval_s must not be negative")
	}
	if w.Twitch.ClientID == "" {
		return fmt.Errorf("config: twitch client_id is required")
	}
	if w.Twitch.ClientSecret == "" {
		return fmt.Errorf("config: twitch client_secret is required")
	}
	if w.Twitch.TimeoutMs < 0 {
		return fmt.Errorf("config: twitch timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// NOTIFICATION SINKS (at least one, each complete if present)
	// ------------------------------------------------------------

	if w.Notify.Gotify == nil && w.Notify.Discord == nil {
		return fmt.Errorf("config: at least one notification sink (gotify or discord) is required")
	}

	if g := w.Notify.Gotify; g != nil {
		if g.URL == "" {
			return fmt.Errorf("config: gotify url is required")
		}
		u, err := url.Parse(g.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: gotify url %q must be a valid http(s) URL", g.URL)
		}
		if g.Token == "" {
			return fmt.Errorf("config: gotify token is required")
		}
	}

	if d := w.Notify.Discord; d != nil {
		if d.BotToken == "" {
			return fmt.Errorf("config: discord bot_token is required")
		}
		if d.ChannelID == "" {
			return fmt.Errorf("config: discord channel_id is required")
		}
	}

	p := w.Notify.Priorities
	for _, v := range []int{p.Live, p.Offline, p.Startup, p.Existing} {
		if v < 0 {
			return fmt.Errorf("config: notification priorities must not be negative")
		}
	}

	return nil
}
