// internal/config/config.go
package config

type Config struct {
	Watch WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Channels []string     `yaml:"channels"`
	Poll     PollConfig   `yaml:"poll"`
	Twitch   TwitchConfig `yaml:"twitch"`
	Notify   NotifyConfig `yaml:"notify"`
	State    StateConfig  `yaml:"state"`
	Status   StatusConfig `yaml:"status"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalS int `yaml:"interval_s"`
}

// ---- TWITCH ----

type TwitchConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TimeoutMs    int    `yaml:"timeout_ms"`

	// Endpoint overrides (defaults point at the real Helix hosts).
	AuthURL string `yaml:"auth_url"`
	APIURL  string `yaml:"api_url"`
}

// ---- NOTIFY ----

type NotifyConfig struct {
	// nil means "use the default" (all three default to on).
	OnOffline        *bool `yaml:"on_offline"`
	AnnounceExisting *bool `yaml:"announce_existing"`
	StartupTest      *bool `yaml:"startup_test"`

	Priorities PriorityConfig `yaml:"priorities"`

	// Sinks are opt-in per section.
	Gotify  *GotifyConfig  `yaml:"gotify"`
	Discord *DiscordConfig `yaml:"discord"`
}

type PriorityConfig struct {
	Live     int `yaml:"live"`
	Offline  int `yaml:"offline"`
	Startup  int `yaml:"startup"`
	Existing int `yaml:"existing"`
}

type GotifyConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// ---- STATE ----

type StateConfig struct {
	// Path to the SQLite state file. Empty disables persistence.
	Path string `yaml:"path"`
}

// ---- STATUS ----

type StatusConfig struct {
	// Listen address for the status endpoint. Empty disables it.
	Listen string `yaml:"listen"`
}
