package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/observability"
)

const (
	alertLatestPath = "alerts/latest"
	alertStatePath  = "alerts/state"
)

// AlertFetcher returns the most recent alert from the safety feed.
// ok is false when the feed is currently empty.
type AlertFetcher interface {
	FetchLatest(ctx context.Context) (raw domain.RawAlertItem, ok bool, err error)
}

// AlertsJob is the stateful dedup and notification trigger. Each pass
// compares the freshly fetched alert against the persisted watermark and, on
// a new alert, performs in strict order: persist the record, dispatch the
// push notification, then advance the watermark. The watermark moves only
// after the dispatch is accepted — a crash in between makes the next pass
// re-detect the same alert and send a duplicate, which is the accepted
// tradeoff; a silently dropped emergency alert is not.
type AlertsJob struct {
	fetcher  AlertFetcher
	store    OverwriteStore
	notifier Notifier
	feed     ChangeFeed
	topic    string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewAlertsJob(fetcher AlertFetcher, store OverwriteStore, notifier Notifier, feed ChangeFeed, topic string, logger *slog.Logger, metrics *observability.Metrics) *AlertsJob {
	return &AlertsJob{fetcher: fetcher, store: store, notifier: notifier, feed: feed, topic: topic, logger: logger, metrics: metrics}
}

func (j *AlertsJob) Name() string { return "alerts" }

func (j *AlertsJob) Run(ctx context.Context) error {
	raw, ok, err := j.fetcher.FetchLatest(ctx)
	if err != nil {
		return err
	}
	if !ok {
		j.logger.Debug("alert feed is empty")
		return nil
	}

	record, err := domain.NormalizeAlert(raw)
	if err != nil {
		return err
	}
	identity := domain.AlertIdentity(raw)

	var state domain.AlertState
	if err := j.store.Get(ctx, alertStatePath, &state); err != nil {
		return fmt.Errorf("read alert watermark: %w", err)
	}

	if state.LastAlertID != nil && *state.LastAlertID == identity {
		// Unchanged since the last delivered alert; polling is much more
		// frequent than alerts, so this is the common path.
		return nil
	}

	if err := j.store.Put(ctx, alertLatestPath, record); err != nil {
		return err
	}
	publishChange(ctx, j.feed, j.metrics, j.logger, alertLatestPath, record)

	if err := j.notifier.Send(ctx, j.topic, record.Title, notificationBody(record), map[string]string{"link": record.Link}); err != nil {
		return err
	}
	j.metrics.NotificationsSent.Inc()

	next := domain.AlertState{
		LastAlertID:      &identity,
		LastAlertPubDate: &record.PubDate,
	}
	if err := j.store.Put(ctx, alertStatePath, next); err != nil {
		return err
	}

	j.logger.Info("emergency alert delivered", "title", record.Title, "pubDate", record.PubDate)
	return nil
}

// notificationBody prefers the alert description, falling back to the title
// so the push is never empty.
func notificationBody(record domain.AlertRecord) string {
	if record.Description != "" {
		return record.Description
	}
	return record.Title
}
