package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/observability"
)

// weatherPath is the overwrite-store document this domain owns.
const weatherPath = "weather"

// WeatherFetcher returns the latest station payload from the weather provider.
type WeatherFetcher interface {
	Fetch(ctx context.Context) (domain.RawWeatherStation, error)
}

// WeatherJob overwrites the weather snapshot on every pass.
type WeatherJob struct {
	fetcher WeatherFetcher
	store   OverwriteStore
	feed    ChangeFeed
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewWeatherJob(fetcher WeatherFetcher, store OverwriteStore, feed ChangeFeed, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *WeatherJob {
	return &WeatherJob{fetcher: fetcher, store: store, feed: feed, clock: clock, logger: logger, metrics: metrics}
}

func (j *WeatherJob) Name() string { return "weather" }

func (j *WeatherJob) Run(ctx context.Context) error {
	raw, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	snap, err := domain.NormalizeWeather(raw, j.clock.Now())
	if err != nil {
		return err
	}
	j.metrics.RecordsNormalized.WithLabelValues(j.Name()).Inc()

	if err := j.store.Put(ctx, weatherPath, snap); err != nil {
		return err
	}
	publishChange(ctx, j.feed, j.metrics, j.logger, weatherPath, snap)

	j.logger.Info("weather updated",
		"temperature", snap.Temperature,
		"feelsLike", snap.FeelsLike,
	)
	return nil
}
