// internal/status/snapshot.go
package status

import (
	"sync"
	"time"

	"github.com/tamzrod/twitch-alert/internal/watcher"
)

// ChannelStatus is the externally visible state of one watched channel.
type ChannelStatus struct {
	Live      bool   `json:"live"`
	Title     string `json:"title,omitempty"`
	LiveSince string `json:"live_since,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Snapshot is the full status document served over HTTP.
type Snapshot struct {
	StartedAt   time.Time                `json:"started_at"`
	LastCycleAt time.Time                `json:"last_cycle_at"`
	Cycles      uint64                   `json:"cycles"`
	Channels    map[string]ChannelStatus `json:"channels"`
}

// Tracker folds cycle results into a snapshot for the status endpoint.
// It has its own lock because HTTP readers are concurrent with the
// orchestrator loop.
type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewTracker(channels []string) *Tracker {
	snap := Snapshot{
		StartedAt: time.Now(),
		Channels:  make(map[string]ChannelStatus, len(channels)),
	}
	for _, login := range channels {
		snap.Channels[login] = ChannelStatus{}
	}
	return &Tracker{snap: snap}
}

// Update records one cycle result.
func (t *Tracker) Update(res watcher.CycleResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.LastCycleAt = res.At
	t.snap.Cycles++

	for login, st := range res.States {
		cs := ChannelStatus{Live: st.Live, Title: st.Title}
		if st.Live && !st.LiveSince.IsZero() {
			cs.LiveSince = st.LiveSince.UTC().Format(time.RFC3339)
		}
		if err := res.Errors[login]; err != nil {
			cs.Error = err.Error()
		}
		t.snap.Channels[login] = cs
	}

	// Logins that failed before their first successful observation have
	// no recorded state yet; still surface the error.
	for login, err := range res.Errors {
		if _, ok := res.States[login]; ok {
			continue
		}
		t.snap.Channels[login] = ChannelStatus{Error: err.Error()}
	}
}

// Snapshot returns a copy safe for concurrent use.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.snap
	out.Channels = make(map[string]ChannelStatus, len(t.snap.Channels))
	for login, cs := range t.snap.Channels {
		out.Channels[login] = cs
	}
	return out
}
