package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/observability"
)

const parkingPath = "liveParking"

// ParkingFetcher returns all lots from the parking provider.
type ParkingFetcher interface {
	Fetch(ctx context.Context) ([]domain.RawParkingLot, error)
}

// ParkingJob overwrites the live parking collection on every pass. The one
// piece of prior state it keeps is the operator-set isHidden flag per lot,
// carried forward from the previous snapshot before the full replace.
type ParkingJob struct {
	fetcher ParkingFetcher
	store   OverwriteStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewParkingJob(fetcher ParkingFetcher, store OverwriteStore, feed ChangeFeed, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *ParkingJob {
	return &ParkingJob{fetcher: fetcher, store: store, feed: feed, clock: clock, logger: logger, metrics: metrics}
}

func (j *ParkingJob) Name() string { return "parking" }

func (j *ParkingJob) Run(ctx context.Context) error {
	raw, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	lots, droppedCount := domain.NormalizeParking(raw)
	if droppedCount > 0 {
		j.logger.Warn("skipped lots with no name", "count", droppedCount)
		j.metrics.RecordsDropped.WithLabelValues(j.Name()).Add(float64(droppedCount))
	}
	if len(lots) == 0 {
		j.logger.Warn("no parking lots returned, keeping previous snapshot")
		return nil
	}
	j.metrics.RecordsNormalized.WithLabelValues(j.Name()).Add(float64(len(lots)))

	var current domain.ParkingCollection
	if err := j.store.Get(ctx, parkingPath, &current); err != nil {
		return fmt.Errorf("read current parking snapshot: %w", err)
	}

	next := domain.ParkingCollection{
		LastUpdated: domain.FormatTimestamp(j.clock.Now()),
		Lots:        make(map[string]domain.ParkingLot, len(lots)),
	}
	for _, lot := range lots {
		if prev, ok := current.Lots[lot.ID]; ok {
			lot.IsHidden = prev.IsHidden
		}
		next.Lots[lot.ID] = lot
	}

	if err := j.store.Put(ctx, parkingPath, next); err != nil {
		return err
	}
	publishChange(ctx, j.feed, j.metrics, j.logger, parkingPath, next)

	j.logger.Info("parking updated",
		"lots", len(next.Lots),
		"removed", len(current.Lots)-len(overlap(current.Lots, next.Lots)),
	)
	return nil
}

// overlap returns the keys present in both snapshots.
func overlap(a, b map[string]domain.ParkingLot) []string {
	var keys []string
	for k := range a {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
