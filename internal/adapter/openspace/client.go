// Package openspace fetches live parking lot counts from the OpenSpace API.
package openspace

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

// Client implements pipeline.ParkingFetcher.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenSpace client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch returns all lots from the multi-lot-info endpoint. The API wraps
// the lot list in an outer single-element list; a flat list is accepted too.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawParkingLot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.UpstreamError("openspace", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.UpstreamError("openspace",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError("openspace", err)
	}

	var nested [][]domain.RawParkingLot
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []domain.RawParkingLot
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, domain.MalformedError("unexpected openspace response shape: %v", err)
	}
	return flat, nil
}
