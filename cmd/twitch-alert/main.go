// cmd/twitch-alert/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tamzrod/twitch-alert/internal/config"
	"github.com/tamzrod/twitch-alert/internal/notify"
	"github.com/tamzrod/twitch-alert/internal/notify/discord"
	"github.com/tamzrod/twitch-alert/internal/notify/gotify"
	"github.com/tamzrod/twitch-alert/internal/state"
	"github.com/tamzrod/twitch-alert/internal/status"
	"github.com/tamzrod/twitch-alert/internal/watcher"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		logger.Error("usage: twitch-alert <config.yaml>")
		os.Exit(1)
	}
	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(logger, "config load failed", err)
	}
	if err := config.Validate(cfg); err != nil {
		fatal(logger, "config validation failed", err)
	}
	config.Normalize(cfg)

	wc := cfg.Watch

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Notification sinks
	// --------------------

	dispatcher := notify.NewDispatcher(logger)

	if g := wc.Notify.Gotify; g != nil {
		ch, err := gotify.New(gotify.Config{URL: g.URL, Token: g.Token})
		if err != nil {
			fatal(logger, "gotify sink failed", err)
		}
		dispatcher.Register(ch)
	}
	if d := wc.Notify.Discord; d != nil {
		ch, err := discord.New(discord.Config{BotToken: d.BotToken, ChannelID: d.ChannelID})
		if err != nil {
			fatal(logger, "discord sink failed", err)
		}
		dispatcher.Register(ch)
	}

	opts := notify.Options{
		OnOffline:        *wc.Notify.OnOffline,
		AnnounceExisting: *wc.Notify.AnnounceExisting,
		PriorityLive:     wc.Notify.Priorities.Live,
		PriorityOffline:  wc.Notify.Priorities.Offline,
		PriorityStartup:  wc.Notify.Priorities.Startup,
		PriorityExisting: wc.Notify.Priorities.Existing,
	}

	// --------------------
	// Persisted state (optional)
	// --------------------

	var store *state.Store
	var seed map[string]watcher.ChannelState

	if wc.State.Path != "" {
		store, err = state.Open(wc.State.Path)
		if err != nil {
			fatal(logger, "state store failed", err)
		}
		defer store.Close()

		seed, err = store.Load(ctx)
		if err != nil {
			fatal(logger, "state load failed", err)
		}
		logger.Info("state restored", "channels", len(seed), "path", wc.State.Path)
	}

	// --------------------
	// Watcher
	// --------------------

	w, err := watcher.Build(wc, seed)
	if err != nil {
		fatal(logger, "watcher build failed", err)
	}

	// --------------------
	// Status endpoint (optional)
	// --------------------

	tracker := status.NewTracker(wc.Channels)

	if wc.Status.Listen != "" {
		srv := status.NewServer(wc.Status.Listen, tracker, logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status server failed", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("status endpoint up", "listen", wc.Status.Listen)
	}

	// --------------------
	// Run
	// --------------------

	if *wc.Notify.StartupTest {
		dispatcher.Dispatch(ctx, notify.Startup(opts, len(wc.Channels)))
	}

	logger.Info("watching channels",
		"count", len(wc.Channels),
		"interval_s", wc.Poll.IntervalS,
	)

	out := make(chan watcher.CycleResult)
	go w.Run(ctx, out)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return

		case res := <-out:
			for login, err := range res.Errors {
				logger.Warn("status query failed", "channel", login, "error", err)
			}

			for _, tr := range res.Transitions {
				logger.Info("transition",
					"channel", tr.Login,
					"kind", tr.Kind.String(),
				)

				msg, ok := notify.ForTransition(tr, opts, res.At)
				if !ok {
					continue
				}
				dispatcher.Dispatch(ctx, msg)
			}

			if store != nil && res.Dirty {
				if err := store.SaveAll(ctx, res.States); err != nil {
					logger.Warn("state save failed", "error", err)
				}
			}

			tracker.Update(res)
		}
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
