package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/observability"
)

const orgEventsDocID = "organizationEvents"

// OrgEventsFetcher returns organization events and resolves submitting
// organization names in one batched call.
type OrgEventsFetcher interface {
	FetchEvents(ctx context.Context) ([]domain.RawEngageEvent, error)
	FetchOrganizationNames(ctx context.Context, ids []string) (map[string]string, error)
}

// OrgEventsJob merges freshly fetched organization events into the persisted
// collection. A failed organization-name lookup degrades to null names
// rather than failing the pass.
type OrgEventsJob struct {
	fetcher OrgEventsFetcher
	docs    DocumentStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	horizon time.Duration
}

func NewOrgEventsJob(fetcher OrgEventsFetcher, docs DocumentStore, feed ChangeFeed, horizon time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *OrgEventsJob {
	return &OrgEventsJob{fetcher: fetcher, docs: docs, feed: feed, clock: clock, logger: logger, metrics: metrics, horizon: horizon}
}

func (j *OrgEventsJob) Name() string { return "orgevents" }

func (j *OrgEventsJob) Run(ctx context.Context) error {
	items, err := j.fetcher.FetchEvents(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		j.logger.Warn("no organization events returned, keeping previous collection")
		return nil
	}

	orgNames := j.resolveOrgNames(ctx, items)

	records, droppedCount := domain.NormalizeOrgEvents(items, orgNames)
	if droppedCount > 0 {
		j.logger.Warn("skipped events with no id", "count", droppedCount)
		j.metrics.RecordsDropped.WithLabelValues(j.Name()).Add(float64(droppedCount))
	}
	if len(records) == 0 {
		j.logger.Warn("no normalizable organization events, keeping previous collection")
		return nil
	}
	j.metrics.RecordsNormalized.WithLabelValues(j.Name()).Add(float64(len(records)))

	return syncEvents(ctx, eventDomainDeps{
		name:    j.Name(),
		docID:   orgEventsDocID,
		docs:    j.docs,
		feed:    j.feed,
		clock:   j.clock,
		logger:  j.logger,
		metrics: j.metrics,
		horizon: j.horizon,
	}, records)
}

func (j *OrgEventsJob) resolveOrgNames(ctx context.Context, items []domain.RawEngageEvent) map[string]string {
	ids := domain.CollectOrgIDs(items)
	if len(ids) == 0 {
		return nil
	}
	names, err := j.fetcher.FetchOrganizationNames(ctx, ids)
	if err != nil {
		j.logger.Warn("organization name lookup failed, proceeding without names", "error", err)
		return nil
	}
	j.logger.Debug("resolved organization names", "count", len(names))
	return names
}
