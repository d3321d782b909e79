// internal/watcher/twitch/client.go
package twitch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

const (
	defaultAuthURL = "https://id.twitch.tv"
	defaultAPIURL  = "https://api.twitch.tv"

	// Helix accepts up to 100 user_login params per /streams call.
	maxLoginsPerCall = 100

	// Refresh the app token this long before its reported expiry.
	tokenLeeway = 60 * time.Second

	maxErrorBody = 512
)

type Config struct {
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	// Endpoint overrides for tests; empty means the real hosts.
	AuthURL string
	APIURL  string
}

// Stream is one channel's observed broadcast state. The zero value
// means offline.
type Stream struct {
	Live      bool
	Title     string
	Category  string
	StartedAt time.Time
}

// Client queries the Twitch Helix API using a cached app access token
// (client-credentials grant).
type Client struct {
	cfg  Config
	http *http.Client

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("twitch: client id required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("twitch: client secret required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	cfg.AuthURL = strings.TrimRight(cfg.AuthURL, "/")
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Streams reports broadcast state per login. Logins absent from the
// Helix response are offline, not errors. Failure is per batch: a
// failed call marks only that batch's logins in errs, other batches
// still produce results.
func (c *Client) Streams(ctx context.Context, logins []string) (map[string]Stream, map[string]error) {
	streams := make(map[string]Stream, len(logins))
	var errs map[string]error

	for start := 0; start < len(logins); start += maxLoginsPerCall {
		end := min(start+maxLoginsPerCall, len(logins))
		batch := logins[start:end]

		live, err := c.queryBatch(ctx, batch)
		if err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			for _, login := range batch {
				errs[login] = err
			}
			continue
		}

		for _, login := range batch {
			streams[login] = live[login]
		}
	}

	return streams, errs
}

func (c *Client) queryBatch(ctx context.Context, batch []string) (map[string]Stream, error) {
	token, err := c.appToken(ctx, false)
	if err != nil {
		return nil, err
	}

	sr, code, err := c.fetchStreams(ctx, batch, token)
	if err == nil && code == http.StatusUnauthorized {
		// Token died before its reported expiry. Refresh once, retry once.
		token, err = c.appToken(ctx, true)
		if err != nil {
			return nil, err
		}
		sr, code, err = c.fetchStreams(ctx, batch, token)
	}
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("twitch: streams: HTTP %d", code)
	}

	live := make(map[string]Stream, len(sr.Data))
	for _, d := range sr.Data {
		live[strings.ToLower(d.UserLogin)] = Stream{
			Live:      true,
			Title:     d.Title,
			Category:  d.GameName,
			StartedAt: d.StartedAt,
		}
	}
	return live, nil
}

type streamsResponse struct {
	Data []struct {
		UserLogin string    `json:"user_login"`
		Title     string    `json:"title"`
		GameName  string    `json:"game_name"`
		StartedAt time.Time `json:"started_at"`
	} `json:"data"`
}

func (c *Client) fetchStreams(ctx context.Context, batch []string, token string) (*streamsResponse, int, error) {
	q := url.Values{}
	for _, login := range batch {
		q.Add("user_login", login)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.APIURL+"/helix/streams?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("twitch: streams request: %w", err)
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("twitch: streams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("twitch: streams read: %w", err)
	}

	var sr streamsResponse
	if err := sonic.Unmarshal(body, &sr); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("twitch: streams decode: %w", err)
	}
	return &sr, resp.StatusCode, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// appToken returns the cached app access token, fetching a fresh one
// when the cache is empty, close to expiry, or force is set.
func (c *Client) appToken(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.token != "" && time.Now().Before(c.tokenExpires.Add(-tokenLeeway)) {
		return c.token, nil
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AuthURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("twitch: token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("twitch: token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("twitch: token read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("twitch: token: HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := sonic.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("twitch: token decode: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("twitch: token response missing access_token")
	}

	expires := tr.ExpiresIn
	if expires <= 0 {
		expires = 3600
	}

	c.token = tr.AccessToken
	c.tokenExpires = time.Now().Add(time.Duration(expires) * time.Second)
	return c.token, nil
}
