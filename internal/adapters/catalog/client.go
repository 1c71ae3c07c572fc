// Package catalog is the client for the game's public catalog API.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// Endpoint paths relative to the base URL.
const (
	ItemPath         = "/item.json"
	RosterUpdatePath = "/roster_update.json"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "rosterlab/1.0"
)

// Client fetches raw JSON payloads. It never retries.
type Client struct {
	http      *resty.Client
	timeout   time.Duration
	userAgent string
	logger    logger.Logger
}

// New returns a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json")
	return c
}

// Item returns the attribute payload for a card identifier.
func (c *Client) Item(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty card identifier", ErrInvalidID)
	}
	return c.get(ctx, ItemPath, id)
}

// RosterUpdate returns the payload of one roster update.
func (c *Client) RosterUpdate(ctx context.Context, updateID int) ([]byte, error) {
	if updateID <= 0 {
		return nil, fmt.Errorf("%w: roster update %d", ErrInvalidID, updateID)
	}
	return c.get(ctx, RosterUpdatePath, strconv.Itoa(updateID))
}

func (c *Client) get(ctx context.Context, path, id string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", id).
		Get(path)
	latency := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordUpstreamRequest(path, 0, latency)
		return nil, fmt.Errorf("%w: GET %s?id=%s: %w", ErrTransport, path, id, err)
	}

	metrics.RecordUpstreamRequest(path, resp.StatusCode(), latency)
	c.logger.Debug(ctx, "upstream response",
		logger.String("path", path),
		logger.String("id", id),
		logger.Int("status", resp.StatusCode()),
		logger.Float64("latency_ms", latency))

	if resp.StatusCode() != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}
	return resp.Body(), nil
}
