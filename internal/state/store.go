// internal/state/store.go
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tamzrod/twitch-alert/internal/watcher"
)

const schema = `
CREATE TABLE IF NOT EXISTS channel_state (
	login      TEXT PRIMARY KEY,
	live       INTEGER NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	live_since TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);`

// Store persists last-known channel state across restarts, so a
// restart does not re-announce channels that were already live.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("state: path required")
	}

	db, err := sql.Open("sqlite", path+"?_foreign_keys=1&_journal=WAL")
	if err != nil {
		return nil, fmt.Errorf("state: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("state: schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Load returns the persisted state map, usable as a watcher seed.
func (s *Store) Load(ctx context.Context) (map[string]watcher.ChannelState, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT login, live, title, live_since FROM channel_state`)
	if err != nil {
		return nil, fmt.Errorf("state: load: %w", err)
	}
	defer rows.Close()

	states := make(map[string]watcher.ChannelState)
	for rows.Next() {
		var (
			login, title, since string
			live                int
		)
		if err := rows.Scan(&login, &live, &title, &since); err != nil {
			return nil, fmt.Errorf("state: scan: %w", err)
		}

		st := watcher.ChannelState{Known: true, Live: live != 0, Title: title}
		if since != "" {
			if t, err := time.Parse(time.RFC3339, since); err == nil {
				st.LiveSince = t
			}
		}
		states[login] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("state: load: %w", err)
	}

	return states, nil
}

// SaveAll upserts every entry in a single transaction.
func (s *Store) SaveAll(ctx context.Context, states map[string]watcher.ChannelState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("state: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO channel_state (login, live, title, live_since, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(login) DO UPDATE SET
			live = excluded.live,
			title = excluded.title,
			live_since = excluded.live_since,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("state: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for login, st := range states {
		if !st.Known {
			continue
		}

		live := 0
		if st.Live {
			live = 1
		}
		since := ""
		if !st.LiveSince.IsZero() {
			since = st.LiveSince.UTC().Format(time.RFC3339)
		}

		if _, err := stmt.ExecContext(ctx, login, live, st.Title, since, now); err != nil {
			return fmt.Errorf("state: save %s: %w", login, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("state: commit: %w", err)
	}
	return nil
}
