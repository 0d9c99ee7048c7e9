// Package client is the index consumer: it fetches the generated index
// artifact over HTTP with a bounded per-attempt timeout, an exponential
// retry policy, and a TTL cache in front of the network.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"blogdex/internal/errors"
	"blogdex/internal/models"
)

const indexPath = "index.json"

// Options tune the fetch behavior. Zero values fall back to the defaults.
type Options struct {
	Timeout   time.Duration // limit for a single attempt
	Attempts  int           // total attempts, not retries
	BaseDelay time.Duration // doubled before each retry
	CacheTTL  time.Duration
}

func (o *Options) withDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = time.Second
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
}

type cacheEntry struct {
	data    []byte
	fetched time.Time
}

type Client struct {
	http    *http.Client
	baseURL string
	opts    Options

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a consumer rooted at baseURL (the URL serving the blog
// content, e.g. "https://example.com/blogs").
func New(baseURL string, opts Options) *Client {
	opts.withDefaults()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		http:    &http.Client{Transport: transport},
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		cache:   make(map[string]cacheEntry),
	}
}

// FetchIndex retrieves and decodes the index artifact. The raw bytes go
// through the TTL cache; a decode failure is a parse-class error.
func (c *Client) FetchIndex(ctx context.Context) (*models.BlogIndex, error) {
	data, err := c.getCached(ctx, indexPath)
	if err != nil {
		return nil, err
	}
	var idx models.BlogIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrap(errors.CodeParse, err, "decode blog index")
	}
	return &idx, nil
}

// DecodeIndex decodes raw index bytes, falling back to the caller-supplied
// default when the payload is not valid JSON. A corrupt fetch must degrade,
// not crash the page.
func DecodeIndex(data []byte, fallback *models.BlogIndex) *models.BlogIndex {
	var idx models.BlogIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return fallback
	}
	return &idx
}

// GetPostByID fetches the index and finds the post with the given id.
// A missing id is a not-found-class error, never a network one.
func (c *Client) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	idx, err := c.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	for i := range idx.Posts {
		if idx.Posts[i].ID == id {
			return &idx.Posts[i], nil
		}
	}
	return nil, errors.NotFound("blog post %q", id)
}

// FetchPostSource retrieves a post's source document (HTML or Markdown) at
// the path recorded in the index.
func (c *Client) FetchPostSource(ctx context.Context, path string) ([]byte, error) {
	return c.getCached(ctx, path)
}

// Invalidate drops every cached entry, forcing the next call to hit the
// network.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// getCached returns a cache entry younger than the TTL, or fetches and
// caches the resource. Concurrent callers for the same key may fetch
// independently; the reads are idempotent so the race is harmless.
func (c *Client) getCached(ctx context.Context, path string) ([]byte, error) {
	c.mu.Lock()
	if e, ok := c.cache[path]; ok && time.Since(e.fetched) < c.opts.CacheTTL {
		c.mu.Unlock()
		return e.data, nil
	}
	c.mu.Unlock()

	data, err := c.getWithRetry(ctx, path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[path] = cacheEntry{data: data, fetched: time.Now()}
	c.mu.Unlock()
	return data, nil
}

func (c *Client) getWithRetry(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.opts.Attempts; attempt++ {
		if attempt > 0 {
			delay := c.opts.BaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, errors.Network(ctx.Err(), "fetch %s aborted", path)
			}
		}
		data, err := c.get(ctx, path)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, errors.Network(lastErr, "fetch %s: %d attempts exhausted", path, c.opts.Attempts)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/html, text/markdown, */*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
