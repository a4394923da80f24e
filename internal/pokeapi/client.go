// Package pokeapi builds the Pokédex cache from the public PokeAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2/"

// ErrNotFound is returned when PokeAPI answers 404.
var ErrNotFound = errors.New("pokeapi: resource not found")

// Cache stores raw response bodies keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

type Client struct {
	base   string
	http   *http.Client
	cache  Cache
	logger *slog.Logger
}

type ClientOption func(*Client)

// WithCache makes the client read through c. A failing cache is logged and
// bypassed.
func WithCache(c Cache) ClientOption { return func(cl *Client) { cl.cache = c } }

func WithHTTPClient(h *http.Client) ClientOption { return func(cl *Client) { cl.http = h } }

func NewClient(base string, logger *slog.Logger, opts ...ClientOption) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base:   strings.TrimSuffix(base, "/") + "/",
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL resolves a path such as "pokemon/1" against the base URL. Absolute
// URLs, as returned inside PokeAPI responses, are used as they are.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.base + strings.TrimPrefix(path, "/")
}

// getJSON fetches path and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := c.URL(path)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, url)
		if err != nil {
			c.logger.Warn("response cache read failed", "url", url, "error", err)
		}
		if ok {
			if err := json.Unmarshal(body, v); err == nil {
				return nil
			}
			c.logger.Warn("discarding unreadable cached response", "url", url)
		}
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, url, body); err != nil {
			c.logger.Warn("response cache write failed", "url", url, "error", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
