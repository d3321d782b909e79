// internal/state/store_test.go
package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tamzrod/twitch-alert/internal/watcher"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() err=%v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestSaveAllLoad_RoundTrip(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	since := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	states := map[string]watcher.ChannelState{
		"alice": {Known: true, Live: true, Title: "speedrun", LiveSince: since},
		"bob":   {Known: true, Live: false},
	}

	if err := s.SaveAll(ctx, states); err != nil {
		t.Fatalf("SaveAll() err=%v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	a := got["alice"]
	if !a.Known || !a.Live || a.Title != "speedrun" || !a.LiveSince.Equal(since) {
		t.Fatalf("unexpected alice state %+v", a)
	}
	b := got["bob"]
	if !b.Known || b.Live || !b.LiveSince.IsZero() {
		t.Fatalf("unexpected bob state %+v", b)
	}
}

func TestSaveAll_Upserts(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	if err := s.SaveAll(ctx, map[string]watcher.ChannelState{
		"alice": {Known: true, Live: true, Title: "old"},
	}); err != nil {
		t.Fatalf("first SaveAll() err=%v", err)
	}
	if err := s.SaveAll(ctx, map[string]watcher.ChannelState{
		"alice": {Known: true, Live: false},
	}); err != nil {
		t.Fatalf("second SaveAll() err=%v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if a := got["alice"]; a.Live || a.Title != "" {
		t.Fatalf("expected overwritten state, got %+v", a)
	}
}

func TestSaveAll_SkipsUnknown(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	if err := s.SaveAll(ctx, map[string]watcher.ChannelState{
		"alice": {Known: false},
	}); err != nil {
		t.Fatalf("SaveAll() err=%v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unknown states must not be persisted, got %v", got)
	}
}

func TestLoad_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() err=%v", err)
	}
	if err := s.SaveAll(ctx, map[string]watcher.ChannelState{
		"alice": {Known: true, Live: true},
	}); err != nil {
		t.Fatalf("SaveAll() err=%v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() err=%v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen err=%v", err)
	}
	defer s2.Close()

	got, err := s2.Load(ctx)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if !got["alice"].Live {
		t.Fatalf("expected persisted state after reopen, got %+v", got["alice"])
	}
}
