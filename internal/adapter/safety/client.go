// Package safety fetches the campus emergency alert RSS feed.
package safety

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/otcampus/campus-feeds/internal/domain"
)

// Client implements pipeline.AlertFetcher.
type Client struct {
	feedURL string
	parser  *gofeed.Parser
	logger  *slog.Logger
}

// NewClient creates a feed client. Timeout applies to the whole fetch+parse.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Client{
		feedURL: feedURL,
		parser:  parser,
		logger:  logger,
	}
}

// FetchLatest returns the most recent feed item. Feeds list newest first;
// items with a parsed publication date are preferred when ordering is
// ambiguous. ok is false for an empty feed.
func (c *Client) FetchLatest(ctx context.Context) (domain.RawAlertItem, bool, error) {
	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return domain.RawAlertItem{}, false, domain.UpstreamError("safety feed", err)
	}
	if len(feed.Items) == 0 {
		return domain.RawAlertItem{}, false, nil
	}

	latest := feed.Items[0]
	for _, item := range feed.Items[1:] {
		if item.PublishedParsed != nil && latest.PublishedParsed != nil &&
			item.PublishedParsed.After(*latest.PublishedParsed) {
			latest = item
		}
	}

	return domain.RawAlertItem{
		Title:           latest.Title,
		Description:     latest.Description,
		Link:            latest.Link,
		GUID:            latest.GUID,
		Published:       latest.Published,
		PublishedParsed: latest.PublishedParsed,
	}, true, nil
}
