package pipeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/observability"
)

const busynessPath = "liveCampusBusyness"

// BusynessFetcher returns all monitored locations from the occupancy provider.
type BusynessFetcher interface {
	Fetch(ctx context.Context) ([]domain.RawBusynessLocation, error)
}

// BusynessJob overwrites the campus busyness collection on every pass.
type BusynessJob struct {
	fetcher BusynessFetcher
	store   OverwriteStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewBusynessJob(fetcher BusynessFetcher, store OverwriteStore, feed ChangeFeed, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *BusynessJob {
	return &BusynessJob{fetcher: fetcher, store: store, feed: feed, clock: clock, logger: logger, metrics: metrics}
}

func (j *BusynessJob) Name() string { return "busyness" }

func (j *BusynessJob) Run(ctx context.Context) error {
	raw, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	locations, droppedCount := domain.NormalizeBusyness(raw)
	if droppedCount > 0 {
		j.logger.Warn("skipped locations with no id", "count", droppedCount)
		j.metrics.RecordsDropped.WithLabelValues(j.Name()).Add(float64(droppedCount))
	}
	if len(locations) == 0 {
		j.logger.Warn("no busyness locations returned, keeping previous snapshot")
		return nil
	}
	j.metrics.RecordsNormalized.WithLabelValues(j.Name()).Add(float64(len(locations)))

	next := domain.BusynessCollection{
		LastUpdated: domain.FormatTimestamp(j.clock.Now()),
		Locations:   make(map[string]domain.BusynessLocation, len(locations)),
	}
	for _, loc := range locations {
		next.Locations[strconv.Itoa(loc.ID)] = loc
	}

	if err := j.store.Put(ctx, busynessPath, next); err != nil {
		return err
	}
	publishChange(ctx, j.feed, j.metrics, j.logger, busynessPath, next)

	j.logger.Info("busyness updated", "locations", len(next.Locations))
	return nil
}
