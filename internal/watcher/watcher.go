// internal/watcher/watcher.go
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Provider abstracts the live-status source.
// The watcher depends on observations only. The returned map must carry
// one Result per requested login; a missing login counts as a failure.
type Provider interface {
	Check(ctx context.Context, logins []string) map[string]Result
}

// Config is the minimal runtime config the watcher needs.
type Config struct {
	Channels []string
	Interval time.Duration
}

// Watcher is a dumb, clock-driven differ. It owns the last-known state
// map and turns consecutive observations into transitions.
type Watcher struct {
	cfg      Config
	provider Provider
	states   map[string]ChannelState
}

// New creates a watcher with immutable config. seed restores persisted
// state so a restart does not re-announce channels that were already
// live; seeded logins outside the watch list are dropped.
func New(cfg Config, provider Provider, seed map[string]ChannelState) (*Watcher, error) {
	if len(cfg.Channels) == 0 {
		return nil, errors.New("watcher: at least one channel required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("watcher: interval must be > 0")
	}
	if provider == nil {
		return nil, errors.New("watcher: provider required")
	}

	states := make(map[string]ChannelState, len(cfg.Channels))
	for _, login := range cfg.Channels {
		if st, ok := seed[login]; ok && st.Known {
			states[login] = st
		}
	}

	return &Watcher{cfg: cfg, provider: provider, states: states}, nil
}

// RunCycle performs exactly one poll cycle: query every channel, diff
// against the recorded state, commit per-channel.
//
// Failure is isolated per channel: a failed query records an error and
// preserves that channel's previous state, the rest of the cycle
// continues. A continuously-live channel yields exactly one KindOnline
// transition total, on the cycle its state flips.
func (w *Watcher) RunCycle(ctx context.Context) CycleResult {
	res := CycleResult{At: time.Now()}

	obs := w.provider.Check(ctx, w.cfg.Channels)

	for _, login := range w.cfg.Channels {
		r, ok := obs[login]
		if !ok {
			res.recordError(login, fmt.Errorf("watcher: provider returned no result for %q", login))
			continue
		}
		if r.Err != nil {
			res.recordError(login, r.Err)
			continue
		}

		cur := r.Status
		prev := w.states[login]

		switch {
		case !prev.Known:
			// Baseline: first successful observation, never an
			// online/offline transition.
			st := ChannelState{Known: true, Live: cur.Live, Title: cur.Title}
			if cur.Live {
				st.LiveSince = cur.StartedAt
				res.Transitions = append(res.Transitions, Transition{
					Login: login, Kind: KindLiveAtStart, Status: cur, Was: prev,
				})
			}
			w.states[login] = st
			res.Dirty = true

		case cur.Live && !prev.Live:
			w.states[login] = ChannelState{
				Known: true, Live: true, Title: cur.Title, LiveSince: cur.StartedAt,
			}
			res.Dirty = true
			res.Transitions = append(res.Transitions, Transition{
				Login: login, Kind: KindOnline, Status: cur, Was: prev,
			})

		case !cur.Live && prev.Live:
			w.states[login] = ChannelState{Known: true, Live: false}
			res.Dirty = true
			res.Transitions = append(res.Transitions, Transition{
				Login: login, Kind: KindOffline, Status: cur, Was: prev,
			})

		default:
			// Unchanged. Refresh the title while live so the status
			// surface tracks renames mid-stream.
			if cur.Live && cur.Title != prev.Title {
				prev.Title = cur.Title
				w.states[login] = prev
				res.Dirty = true
			}
		}
	}

	res.States = w.snapshot()
	return res
}

// States returns a copy of the recorded state map.
func (w *Watcher) States() map[string]ChannelState {
	return w.snapshot()
}

func (w *Watcher) snapshot() map[string]ChannelState {
	out := make(map[string]ChannelState, len(w.states))
	for login, st := range w.states {
		out[login] = st
	}
	return out
}

func (r *CycleResult) recordError(login string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]error)
	}
	r.Errors[login] = err
}
