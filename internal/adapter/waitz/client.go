// Package waitz fetches live campus occupancy from the Waitz API.
package waitz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/otcampus/campus-feeds/internal/domain"
)

// Client implements pipeline.BusynessFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Waitz client. The live endpoint is unauthenticated.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch returns all monitored locations. Waitz wraps them in a "data" field;
// a top-level array is accepted as well.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawBusynessLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.UpstreamError("waitz", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.UpstreamError("waitz",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError("waitz", err)
	}

	var wrapped domain.RawBusynessResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var flat []domain.RawBusynessLocation
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, domain.MalformedError("unexpected waitz response shape: %v", err)
	}
	return flat, nil
}
