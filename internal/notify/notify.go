// internal/notify/notify.go
package notify

import (
	"context"
	"log/slog"
)

// Message is one push notification.
type Message struct {
	Title    string
	Body     string
	Priority int
}

// Channel is a backend delivery mechanism. Gotify, Discord, etc.
// implement this interface.
type Channel interface {
	// Name returns the identifier for this channel, used in logs.
	Name() string

	// Send delivers one message through this channel.
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans a message out to every registered channel.
// Register all channels before the first Dispatch; there is no
// locking because the set never changes at runtime.
type Dispatcher struct {
	channels []Channel
	logger   *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Register adds a backend channel to the dispatcher.
func (d *Dispatcher) Register(ch Channel) {
	d.channels = append(d.channels, ch)
}

// Dispatch sends msg to all registered channels. A channel failure is
// logged and swallowed: delivery is at-most-once and a missed
// notification never affects state tracking.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	for _, ch := range d.channels {
		if err := ch.Send(ctx, msg); err != nil {
			d.logger.Warn("notification send failed",
				"channel", ch.Name(),
				"title", msg.Title,
				"error", err,
			)
		}
	}
}
