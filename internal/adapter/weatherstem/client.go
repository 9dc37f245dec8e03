// Package weatherstem fetches station observations from the WeatherStem API.
package weatherstem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/otcampus/campus-feeds/internal/domain"
)

// Client implements pipeline.WeatherFetcher.
type Client struct {
	apiKey     string
	station    string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a WeatherStem client for one station.
func NewClient(baseURL, apiKey, station string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		station: station,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch posts the station query and returns the first station object.
// WeatherStem answers with either a list of stations or a single object;
// both shapes are accepted.
func (c *Client) Fetch(ctx context.Context) (domain.RawWeatherStation, error) {
	payload, err := json.Marshal(request{
		APIKey:   c.apiKey,
		Stations: []string{c.station},
	})
	if err != nil {
		return domain.RawWeatherStation{}, fmt.Errorf("encode weatherstem request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return domain.RawWeatherStation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawWeatherStation{}, domain.UpstreamError("weatherstem", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RawWeatherStation{}, domain.UpstreamError("weatherstem",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawWeatherStation{}, domain.UpstreamError("weatherstem", err)
	}

	var stations []domain.RawWeatherStation
	if err := json.Unmarshal(raw, &stations); err == nil {
		if len(stations) == 0 {
			return domain.RawWeatherStation{}, domain.MalformedError("weatherstem returned no stations")
		}
		return stations[0], nil
	}

	var station domain.RawWeatherStation
	if err := json.Unmarshal(raw, &station); err != nil {
		return domain.RawWeatherStation{}, domain.MalformedError("unexpected weatherstem response shape: %v", err)
	}
	return station, nil
}

type request struct {
	APIKey   string   `json:"api_key"`
	Stations []string `json:"stations"`
}
