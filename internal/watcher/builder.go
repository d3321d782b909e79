// internal/watcher/builder.go
package watcher

import (
	"context"
	"time"

	cfg "github.com/tamzrod/twitch-alert/internal/config"
	"github.com/tamzrod/twitch-alert/internal/watcher/twitch"
)

// Build constructs a Watcher wired to the Helix status provider.
// seed may be nil (fresh start) or a persisted state map.
func Build(wc cfg.WatchConfig, seed map[string]ChannelState) (*Watcher, error) {
	client, err := twitch.New(twitch.Config{
		ClientID:     wc.Twitch.ClientID,
		ClientSecret: wc.Twitch.ClientSecret,
		Timeout:      time.Duration(wc.Twitch.TimeoutMs) * time.Millisecond,
		AuthURL:      wc.Twitch.AuthURL,
		APIURL:       wc.Twitch.APIURL,
	})
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			Channels: wc.Channels,
			Interval: time.Duration(wc.Poll.IntervalS) * time.Second,
		},
		helixProvider{client},
		seed,
	)
}

// helixProvider adapts the Helix client to the Provider contract.
type helixProvider struct {
	c *twitch.Client
}

func (p helixProvider) Check(ctx context.Context, logins []string) map[string]Result {
	streams, errs := p.c.Streams(ctx, logins)

	out := make(map[string]Result, len(logins))
	for _, login := range logins {
		if err := errs[login]; err != nil {
			out[login] = Result{Err: err}
			continue
		}
		s := streams[login]
		out[login] = Result{Status: Status{
			Live:      s.Live,
			Title:     s.Title,
			Category:  s.Category,
			StartedAt: s.StartedAt,
		}}
	}
	return out
}
