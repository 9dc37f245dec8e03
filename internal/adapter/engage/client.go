// Package engage fetches student organization events from the Engage API.
package engage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/otcampus/campus-feeds/internal/domain"
)

// Engage timestamps its window parameters without an offset; the API
// interprets them in campus-local time.
const windowLayout = "2006-01-02T00:00:00"

// Client implements pipeline.OrgEventsFetcher.
type Client struct {
	apiKey     string
	httpClient *http.Client
	eventsURL  string
	orgsURL    string
	window     time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewClient creates an Engage client fetching the given forward window.
func NewClient(eventsURL, orgsURL, apiKey string, window time.Duration, timeout time.Duration, now func() time.Time, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		eventsURL: eventsURL,
		orgsURL:   orgsURL,
		window:    window,
		now:       now,
		logger:    logger,
	}
}

// FetchEvents returns events starting within the window.
func (c *Client) FetchEvents(ctx context.Context) ([]domain.RawEngageEvent, error) {
	nowEastern := c.now().In(domain.Eastern)
	params := url.Values{
		"startsAfter":  {nowEastern.Format(windowLayout)},
		"startsBefore": {nowEastern.Add(c.window).Format(windowLayout)},
		"take":         {"100"},
	}

	var parsed domain.RawEngageResponse
	if err := c.get(ctx, c.eventsURL+"?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != "" {
		return nil, domain.UpstreamError("engage", fmt.Errorf("api error: %s", parsed.Error))
	}
	return parsed.Items, nil
}

// FetchOrganizationNames batch-resolves organization ids to names in a
// single call. The ids parameter repeats per id, the provider's convention.
func (c *Client) FetchOrganizationNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{"take": {"500"}}
	for _, id := range ids {
		params.Add("ids", id)
	}

	var parsed orgsResponse
	if err := c.get(ctx, c.orgsURL+"?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != "" {
		return nil, domain.UpstreamError("engage", fmt.Errorf("orgs api error: %s", parsed.Error))
	}

	names := make(map[string]string, len(parsed.Items))
	for _, item := range parsed.Items {
		if id := item.ID.String(); id != "" {
			names[id] = item.Name
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, fullURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Engage-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.UpstreamError("engage", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.UpstreamError("engage",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.MalformedError("decode engage response: %v", err)
	}
	return nil
}

// Engage organizations endpoint response types.

type orgsResponse struct {
	Items []orgItem `json:"items"`
	Error string    `json:"error"`
}

type orgItem struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}
