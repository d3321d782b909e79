// internal/watcher/types.go
package watcher

import "time"

// Status is what the provider observed for one channel on one cycle.
type Status struct {
	Live      bool
	Title     string
	Category  string
	StartedAt time.Time
}

// Result pairs an observation with its own error, so one channel's
// failure never contaminates another's.
type Result struct {
	Status Status
	Err    error
}

// ChannelState is the last-known state of one watched channel.
// Known stays false until the first successful observation.
type ChannelState struct {
	Known     bool
	Live      bool
	Title     string
	LiveSince time.Time
}

// Kind classifies a transition.
type Kind int

const (
	// KindOnline: offline on the previous cycle, live on this one.
	KindOnline Kind = iota
	// KindOffline: live on the previous cycle, offline on this one.
	KindOffline
	// KindLiveAtStart: channel was already live on its baseline cycle.
	KindLiveAtStart
)

func (k Kind) String() string {
	switch k {
	case KindOnline:
		return "online"
	case KindOffline:
		return "offline"
	case KindLiveAtStart:
		return "live-at-start"
	}
	return "unknown"
}

// Transition is one state change detected by a cycle.
type Transition struct {
	Login  string
	Kind   Kind
	Status Status
	Was    ChannelState
}

// CycleResult is the outcome of one poll cycle.
type CycleResult struct {
	At          time.Time
	Transitions []Transition

	// Errors holds per-login query failures. A failed login keeps its
	// previous recorded state.
	Errors map[string]error

	// States is a snapshot copy of the recorded state after this cycle.
	States map[string]ChannelState

	// Dirty is true when any recorded state changed this cycle.
	Dirty bool
}
