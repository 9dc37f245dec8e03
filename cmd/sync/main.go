package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/otcampus/campus-feeds/internal/adapter/engage"
	"github.com/otcampus/campus-feeds/internal/adapter/firebase"
	httpadapter "github.com/otcampus/campus-feeds/internal/adapter/http"
	kafkaadapter "github.com/otcampus/campus-feeds/internal/adapter/kafka"
	"github.com/otcampus/campus-feeds/internal/adapter/localist"
	"github.com/otcampus/campus-feeds/internal/adapter/openspace"
	"github.com/otcampus/campus-feeds/internal/adapter/safety"
	"github.com/otcampus/campus-feeds/internal/adapter/waitz"
	"github.com/otcampus/campus-feeds/internal/adapter/weatherstem"
	"github.com/otcampus/campus-feeds/internal/config"
	"github.com/otcampus/campus-feeds/internal/observability"
	"github.com/otcampus/campus-feeds/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := firebase.NewApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Error("failed to initialize firebase app", "error", err)
		os.Exit(1)
	}
	store, err := firebase.NewRealtimeStore(ctx, app, logger)
	if err != nil {
		logger.Error("failed to initialize realtime database", "error", err)
		os.Exit(1)
	}
	docs, err := firebase.NewDocumentStore(ctx, app, logger)
	if err != nil {
		logger.Error("failed to initialize firestore", "error", err)
		os.Exit(1)
	}
	notifier, err := firebase.NewNotifier(ctx, app, logger)
	if err != nil {
		logger.Error("failed to initialize messaging", "error", err)
		os.Exit(1)
	}

	// Change feed is feature-flagged via KAFKA_BROKERS.
	var feed pipeline.ChangeFeed
	var feedWriter *kafkaadapter.Writer
	if cfg.ChangeFeedEnabled() {
		feedWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaChangefeedTopic, logger)
		feed = feedWriter
		logger.Info("change feed enabled", "topic", cfg.KafkaChangefeedTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("change feed disabled")
	}

	calendarHorizon := time.Duration(cfg.CalendarHorizonDays) * 24 * time.Hour
	orgEventsHorizon := time.Duration(cfg.OrgEventsHorizonDays) * 24 * time.Hour

	weatherClient := weatherstem.NewClient(cfg.WeatherStemURL, cfg.WeatherStemAPIKey, cfg.WeatherStation, cfg.ProviderTimeout, logger)
	parkingClient := openspace.NewClient(cfg.OpenSpaceURL, cfg.OpenSpaceAPIKey, cfg.ProviderTimeout, logger)
	busynessClient := waitz.NewClient(cfg.WaitzURL, cfg.ProviderTimeout, logger)
	calendarClient := localist.NewClient(cfg.LocalistURL, cfg.CalendarHorizonDays, cfg.ProviderTimeout, logger)
	engageClient := engage.NewClient(cfg.EngageEventsURL, cfg.EngageOrgsURL, cfg.EngageAPIKey, orgEventsHorizon, cfg.ProviderTimeout, clock.Now, logger)
	alertClient := safety.NewClient(cfg.AlertFeedURL, cfg.ProviderTimeout, logger)

	runner := pipeline.NewRunner(logger, metrics,
		pipeline.NewWeatherJob(weatherClient, store, feed, clock, logger, metrics),
		pipeline.NewParkingJob(parkingClient, store, feed, clock, logger, metrics),
		pipeline.NewBusynessJob(busynessClient, store, feed, clock, logger, metrics),
		pipeline.NewCalendarJob(calendarClient, docs, feed, calendarHorizon, clock, logger, metrics),
		pipeline.NewOrgEventsJob(engageClient, docs, feed, orgEventsHorizon, clock, logger, metrics),
		pipeline.NewAlertsJob(alertClient, store, notifier, feed, cfg.AlertTopic, logger, metrics),
	)

	scheduler := pipeline.NewScheduler(runner, map[string]time.Duration{
		"weather":   cfg.WeatherInterval,
		"parking":   cfg.ParkingInterval,
		"busyness":  cfg.BusynessInterval,
		"calendar":  cfg.CalendarInterval,
		"orgevents": cfg.OrgEventsInterval,
		"alerts":    cfg.AlertsInterval,
	}, clock, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, runner, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	scheduler.Start(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	scheduler.Stop()
	if feedWriter != nil {
		if err := feedWriter.Close(); err != nil {
			logger.Error("change feed close error", "error", err)
		}
	}
	if err := docs.Close(); err != nil {
		logger.Error("firestore close error", "error", err)
	}

	logger.Info("shutdown complete")
}
