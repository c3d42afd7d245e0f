// Package client is a thin HTTP client for the kvlru server API, used by the
// CLI subcommands and the monitor TUI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/kvlru/internal/server"
)

// ErrNotFound reports a cache miss from the server.
var ErrNotFound = fmt.Errorf("key not found")

// Client talks to a running kvlru server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL (e.g. "http://127.0.0.1:7600").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Get fetches the value for key. Returns ErrNotFound on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	var resp server.GetResponse
	err := c.doGet(ctx, "/get?key="+url.QueryEscape(key), &resp)
	if err != nil {
		return "", err
	}
	return resp.Value, nil
}

// Put stores value under key.
func (c *Client) Put(ctx context.Context, key, value string) error {
	return c.doPost(ctx, "/put", server.PutRequest{Key: key, Value: value}, nil)
}

// Del removes key, reporting whether it was present.
func (c *Client) Del(ctx context.Context, key string) (bool, error) {
	var resp server.DelResponse
	if err := c.doPost(ctx, "/del", server.DelRequest{Key: key}, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// Clear empties the server's store.
func (c *Client) Clear(ctx context.Context) error {
	return c.doPost(ctx, "/clear", struct{}{}, nil)
}

// Has reports whether key is present, without touching recency.
func (c *Client) Has(ctx context.Context, key string) (bool, error) {
	var resp server.HasResponse
	if err := c.doGet(ctx, "/has?key="+url.QueryEscape(key), &resp); err != nil {
		return false, err
	}
	return resp.Present, nil
}

// Keys lists keys ordered from least to most recently used.
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	var resp server.KeysResponse
	if err := c.doGet(ctx, "/keys", &resp); err != nil {
		return nil, err
	}
	return resp.Keys, nil
}

// Snapshot lists entries ordered from least to most recently used.
func (c *Client) Snapshot(ctx context.Context) ([]server.SnapshotEntry, error) {
	var resp server.SnapshotResponse
	if err := c.doGet(ctx, "/snapshot", &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Stats fetches the server counters.
func (c *Client) Stats(ctx context.Context) (server.StatsSnapshot, error) {
	var resp server.StatsSnapshot
	if err := c.doGet(ctx, "/stats", &resp); err != nil {
		return server.StatsSnapshot{}, err
	}
	return resp, nil
}

func (c *Client) doGet(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var errResp server.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
