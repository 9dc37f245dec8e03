package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/eventsync"
	"github.com/otcampus/campus-feeds/internal/observability"
)

const (
	eventsCollection = "events"
	calendarDocID    = "calendarEvents"
)

// CalendarFetcher returns the calendar provider's events for its fetch window.
type CalendarFetcher interface {
	Fetch(ctx context.Context) ([]domain.RawLocalistItem, error)
}

// CalendarJob merges freshly fetched calendar events into the persisted
// collection. The horizon is the provider's forward fetch window; the sync
// engine uses it to tell a cancelled event from one that simply was not
// queried this run.
type CalendarJob struct {
	fetcher CalendarFetcher
	docs    DocumentStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	horizon time.Duration
}

func NewCalendarJob(fetcher CalendarFetcher, docs DocumentStore, feed ChangeFeed, horizon time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *CalendarJob {
	return &CalendarJob{fetcher: fetcher, docs: docs, feed: feed, clock: clock, logger: logger, metrics: metrics, horizon: horizon}
}

func (j *CalendarJob) Name() string { return "calendar" }

func (j *CalendarJob) Run(ctx context.Context) error {
	items, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	records, droppedCount := domain.NormalizeCalendarEvents(items)
	if droppedCount > 0 {
		j.logger.Warn("skipped events with no id", "count", droppedCount)
		j.metrics.RecordsDropped.WithLabelValues(j.Name()).Add(float64(droppedCount))
	}
	if len(records) == 0 {
		// A transient empty fetch must not touch the stored collection.
		j.logger.Warn("no calendar events returned, keeping previous collection")
		return nil
	}
	j.metrics.RecordsNormalized.WithLabelValues(j.Name()).Add(float64(len(records)))

	return syncEvents(ctx, eventDomainDeps{
		name:    j.Name(),
		docID:   calendarDocID,
		docs:    j.docs,
		feed:    j.feed,
		clock:   j.clock,
		logger:  j.logger,
		metrics: j.metrics,
		horizon: j.horizon,
	}, records)
}

// eventDomainDeps bundles what the two event domains share for the merge and
// persist step.
type eventDomainDeps struct {
	name    string
	docID   string
	docs    DocumentStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	horizon time.Duration
}

// syncEvents reads the persisted collection, merges the batch through the
// sync engine, and writes the result back.
func syncEvents(ctx context.Context, d eventDomainDeps, records []domain.EventRecord) error {
	var existing domain.EventCollection
	if _, err := d.docs.GetDocument(ctx, eventsCollection, d.docID, &existing); err != nil {
		return fmt.Errorf("read %s collection: %w", d.name, err)
	}

	res := eventsync.Merge(existing, records, d.clock.Now(), d.horizon)

	if err := d.docs.SetDocument(ctx, eventsCollection, d.docID, res.Collection); err != nil {
		return err
	}
	publishChange(ctx, d.feed, d.metrics, d.logger, eventsCollection+"/"+d.docID, res.Collection)

	d.metrics.EventsPruned.WithLabelValues(d.name).Add(float64(res.Pruned))
	d.metrics.TodayEvents.WithLabelValues(d.name).Set(float64(res.Collection.TodayCount))

	d.logger.Info("events updated",
		"domain", d.name,
		"total", len(res.Collection.Items),
		"inserted", res.Inserted,
		"updated", res.Updated,
		"pruned", res.Pruned,
		"today", res.Collection.TodayCount,
	)
	return nil
}
