// internal/notify/messages.go
package notify

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"

	"github.com/tamzrod/twitch-alert/internal/watcher"
)

// Options mirrors the notify section of the config.
type Options struct {
	OnOffline        bool
	AnnounceExisting bool

	PriorityLive     int
	PriorityOffline  int
	PriorityStartup  int
	PriorityExisting int
}

// ForTransition renders a transition as a push message. ok is false
// when the options suppress this transition kind; the state change
// itself has already been committed by the watcher either way.
func ForTransition(tr watcher.Transition, opts Options, now time.Time) (msg Message, ok bool) {
	switch tr.Kind {
	case watcher.KindOnline:
		return Message{
			Title:    fmt.Sprintf("%s is LIVE", tr.Login),
			Body:     liveBody(fmt.Sprintf("%s just went online.", tr.Login), tr.Status),
			Priority: opts.PriorityLive,
		}, true

	case watcher.KindOffline:
		if !opts.OnOffline {
			return Message{}, false
		}
		body := fmt.Sprintf("%s just ended the stream.", tr.Login)
		if !tr.Was.LiveSince.IsZero() && now.After(tr.Was.LiveSince) {
			d := now.Sub(tr.Was.LiveSince).Truncate(time.Second)
			body = fmt.Sprintf("%s went offline after %s.",
				tr.Login, durafmt.Parse(d).LimitFirstN(2))
		}
		return Message{
			Title:    fmt.Sprintf("%s is offline", tr.Login),
			Body:     body,
			Priority: opts.PriorityOffline,
		}, true

	case watcher.KindLiveAtStart:
		if !opts.AnnounceExisting {
			return Message{}, false
		}
		return Message{
			Title:    fmt.Sprintf("%s is already LIVE", tr.Login),
			Body:     liveBody(fmt.Sprintf("%s was already online at startup.", tr.Login), tr.Status),
			Priority: opts.PriorityExisting,
		}, true
	}

	return Message{}, false
}

// Startup is the boot-time test message confirming the sinks work.
func Startup(opts Options, channels int) Message {
	return Message{
		Title:    "Twitch monitor started",
		Body:     fmt.Sprintf("Watching %d channel(s).", channels),
		Priority: opts.PriorityStartup,
	}
}

func liveBody(lead string, st watcher.Status) string {
	body := lead
	if st.Title != "" {
		body += "\n" + st.Title
	}
	if st.Category != "" {
		body += fmt.Sprintf("\nPlaying: %s", st.Category)
	}
	return body
}
