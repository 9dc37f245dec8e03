// Package localist fetches campus calendar events from the Localist API.
package localist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/otcampus/campus-feeds/internal/domain"
)

// Client implements pipeline.CalendarFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	days       int
	perPage    int
	logger     *slog.Logger
}

// NewClient creates a Localist client fetching a rolling window of days.
func NewClient(baseURL string, days int, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		days:    days,
		perPage: 100,
		logger:  logger,
	}
}

// Fetch returns the window's events, following pagination up to two pages —
// the provider caps useful depth well before that in practice.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawLocalistItem, error) {
	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	items := first.Events

	if first.Page.Total >= 2 {
		second, err := c.fetchPage(ctx, 2)
		if err != nil {
			return nil, err
		}
		items = append(items, second.Events...)
	}
	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (domain.RawLocalistResponse, error) {
	url := fmt.Sprintf("%s?days=%d&pp=%d", c.baseURL, c.days, c.perPage)
	if page > 1 {
		url += "&page=" + strconv.Itoa(page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawLocalistResponse{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawLocalistResponse{}, domain.UpstreamError("localist", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RawLocalistResponse{}, domain.UpstreamError("localist",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var parsed domain.RawLocalistResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.RawLocalistResponse{}, domain.MalformedError("decode localist page %d: %v", page, err)
	}
	return parsed, nil
}
