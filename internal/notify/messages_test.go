// internal/notify/messages_test.go
package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/twitch-alert/internal/watcher"
)

var testOpts = Options{
	OnOffline:        true,
	AnnounceExisting: true,
	PriorityLive:     5,
	PriorityOffline:  3,
	PriorityStartup:  1,
	PriorityExisting: 4,
}

func TestForTransition_Online(t *testing.T) {
	tr := watcher.Transition{
		Login: "alice",
		Kind:  watcher.KindOnline,
		Status: watcher.Status{
			Live: true, Title: "speedrun", Category: "Chess",
		},
	}

	msg, ok := ForTransition(tr, testOpts, time.Now())
	if !ok {
		t.Fatalf("online transition must produce a message")
	}
	if msg.Title != "alice is LIVE" {
		t.Fatalf("unexpected title %q", msg.Title)
	}
	if msg.Priority != 5 {
		t.Fatalf("unexpected priority %d", msg.Priority)
	}
	if !strings.Contains(msg.Body, "speedrun") || !strings.Contains(msg.Body, "Chess") {
		t.Fatalf("body must carry stream title and category, got %q", msg.Body)
	}
}

func TestForTransition_OfflineWithDuration(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)
	tr := watcher.Transition{
		Login: "alice",
		Kind:  watcher.KindOffline,
		Was: watcher.ChannelState{
			Known: true, Live: true,
			LiveSince: now.Add(-90 * time.Minute),
		},
	}

	msg, ok := ForTransition(tr, testOpts, now)
	if !ok {
		t.Fatalf("offline transition must produce a message when enabled")
	}
	if msg.Priority != 3 {
		t.Fatalf("unexpected priority %d", msg.Priority)
	}
	if !strings.Contains(msg.Body, "1 hour 30 minutes") {
		t.Fatalf("body must carry the humanized duration, got %q", msg.Body)
	}
}

func TestForTransition_OfflineSuppressed(t *testing.T) {
	opts := testOpts
	opts.OnOffline = false

	tr := watcher.Transition{Login: "alice", Kind: watcher.KindOffline}
	if _, ok := ForTransition(tr, opts, time.Now()); ok {
		t.Fatalf("offline transition must be suppressed when on_offline is off")
	}
}

func TestForTransition_OfflineWithoutLiveSince(t *testing.T) {
	tr := watcher.Transition{
		Login: "alice",
		Kind:  watcher.KindOffline,
		Was:   watcher.ChannelState{Known: true, Live: true},
	}

	msg, ok := ForTransition(tr, testOpts, time.Now())
	if !ok {
		t.Fatalf("expected message")
	}
	if !strings.Contains(msg.Body, "ended the stream") {
		t.Fatalf("expected fallback body without duration, got %q", msg.Body)
	}
}

func TestForTransition_LiveAtStart(t *testing.T) {
	tr := watcher.Transition{
		Login:  "alice",
		Kind:   watcher.KindLiveAtStart,
		Status: watcher.Status{Live: true},
	}

	msg, ok := ForTransition(tr, testOpts, time.Now())
	if !ok {
		t.Fatalf("expected announcement for already-live channel")
	}
	if msg.Priority != 4 {
		t.Fatalf("unexpected priority %d", msg.Priority)
	}

	opts := testOpts
	opts.AnnounceExisting = false
	if _, ok := ForTransition(tr, opts, time.Now()); ok {
		t.Fatalf("announcement must be suppressed when announce_existing is off")
	}
}

func TestStartup(t *testing.T) {
	msg := Startup(testOpts, 3)
	if msg.Priority != 1 {
		t.Fatalf("unexpected priority %d", msg.Priority)
	}
	if !strings.Contains(msg.Body, "3 channel(s)") {
		t.Fatalf("unexpected body %q", msg.Body)
	}
}
