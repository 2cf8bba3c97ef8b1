package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/config"
	"github.com/Rorical/cadcopilot/internal/models"
)

const (
	recommendPath = "/auto-recommend"
	maxErrorBody  = 512
	userAgent     = "cadcopilot/1.0"
)

// Client calls the recommendation service of one deployment.
type Client struct {
	deployment config.Deployment
	http       *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New validates the deployment and builds a client. A zero RequestTimeout
// leaves the request unbounded apart from ctx.
func New(deployment config.Deployment, opts ...Option) (*Client, error) {
	if err := deployment.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		deployment: deployment,
		http:       &http.Client{Timeout: deployment.RequestTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Deployment returns the deployment the client targets.
func (c *Client) Deployment() config.Deployment {
	return c.deployment
}

// Endpoint builds the request URL for instruction.
func (c *Client) Endpoint(instruction string) string {
	base := strings.TrimRight(strings.TrimSpace(c.deployment.ServiceBaseURL), "/")
	query := strings.Join([]string{
		"did=" + encodeComponent(c.deployment.DocumentID),
		"wid=" + encodeComponent(c.deployment.WorkspaceID),
		"eid=" + encodeComponent(c.deployment.ElementID),
		"instruction=" + encodeComponent(instruction),
	}, "&")
	return base + recommendPath + "?" + query
}

// encodeComponent percent-encodes s for a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Recommend issues one GET to the service and decodes the body.
func (c *Client) Recommend(ctx context.Context, instruction string) (models.RecommendationResponse, error) {
	endpoint := c.Endpoint(instruction)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.RecommendationResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return models.RecommendationResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.RecommendationResponse{}, fmt.Errorf("%w: %v", ErrReadResponse, err)
	}
	c.logger.Debug("recommendation response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := string(body)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return models.RecommendationResponse{}, &StatusError{StatusCode: resp.StatusCode, Body: text}
	}

	return Decode(body)
}

// Decode parses a service body and rejects found responses missing a
// section the renderer relies on.
func Decode(body []byte) (models.RecommendationResponse, error) {
	var parsed models.RecommendationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.RecommendationResponse{}, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	if !parsed.Complete() {
		return models.RecommendationResponse{}, fmt.Errorf("%w: found response lacks analysis, recommendation or onshape_instruction", ErrIncomplete)
	}
	return parsed, nil
}
