package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
	"github.com/google/uuid"
)

const (
	requestIDHeader  = "X-Request-ID"
	maxResponseBytes = 16 << 20
)

type Client struct {
	endpoint     string
	httpClient   *http.Client
	logger       *slog.Logger
	newRequestID func() string
	now          func() time.Time
}

var _ ports.TrendFetcher = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRequestIDs(next func() string) Option {
	return func(c *Client) {
		if next != nil {
			c.newRequestID = next
		}
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("trends endpoint is empty")
	}

	c := &Client{
		endpoint:     endpoint,
		httpClient:   http.DefaultClient,
		logger:       slog.Default(),
		newRequestID: uuid.NewString,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchTrends posts the symbols and decodes whatever JSON comes back, whatever the HTTP
// status: a 400 with an error body is a server reported error, not a transport failure.
func (c *Client) FetchTrends(ctx context.Context, req domain.TrendRequest) (domain.TrendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.TrendResponse{}, fmt.Errorf("encode trends request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.TrendResponse{}, fmt.Errorf("build trends request: %w", err)
	}
	requestID := c.newRequestID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)

	started := c.now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "trends request failed", "request_id", requestID, "error", err)
		return domain.TrendResponse{}, fmt.Errorf("post trends: %w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.TrendResponse{}, fmt.Errorf("read trends response: %w: %w", domain.ErrFetchFailed, err)
	}

	var payload domain.TrendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.WarnContext(ctx, "trends response is not json",
			"request_id", requestID,
			"status", resp.StatusCode,
			"error", err)
		return domain.TrendResponse{}, fmt.Errorf("decode trends response: %w: %w", domain.ErrFetchFailed, err)
	}

	c.logger.InfoContext(ctx, "trends fetched",
		"request_id", requestID,
		"status", resp.StatusCode,
		"symbols", len(req.Symbols),
		"series", len(payload.Trends),
		"latency_ms", c.now().Sub(started).Milliseconds())

	return payload, nil
}
