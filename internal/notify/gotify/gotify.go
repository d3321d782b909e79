// internal/notify/gotify/gotify.go
package gotify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tamzrod/twitch-alert/internal/notify"
)

const maxErrorBody = 512

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// Channel delivers messages to a Gotify server via its /message
// endpoint.
type Channel struct {
	url   string
	token string
	http  *http.Client
}

func New(cfg Config) (*Channel, error) {
	if cfg.URL == "" {
		return nil, errors.New("gotify: url required")
	}
	if cfg.Token == "" {
		return nil, errors.New("gotify: token required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Channel{
		url:   strings.TrimRight(cfg.URL, "/"),
		token: cfg.Token,
		http:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Channel) Name() string { return "gotify" }

type payload struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

func (c *Channel) Send(ctx context.Context, msg notify.Message) error {
	body, err := sonic.Marshal(payload{
		Title:    msg.Title,
		Message:  msg.Body,
		Priority: msg.Priority,
	})
	if err != nil {
		return fmt.Errorf("gotify: encode: %w", err)
	}

	endpoint := c.url + "/message?token=" + url.QueryEscape(c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gotify: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gotify: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("gotify: send failed: HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
