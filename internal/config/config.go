// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Firebase backends.
	FirebaseProjectID       string
	FirebaseDatabaseURL     string
	FirebaseCredentialsFile string

	// Upstream providers.
	WeatherStemURL    string
	WeatherStemAPIKey string
	WeatherStation    string
	OpenSpaceURL      string
	OpenSpaceAPIKey   string
	WaitzURL          string
	LocalistURL       string
	EngageEventsURL   string
	EngageOrgsURL     string
	EngageAPIKey      string
	AlertFeedURL      string
	ProviderTimeout   time.Duration

	// Notification settings.
	AlertTopic string

	// Sync cadence and windows.
	WeatherInterval   time.Duration
	ParkingInterval   time.Duration
	BusynessInterval  time.Duration
	CalendarInterval  time.Duration
	OrgEventsInterval time.Duration
	AlertsInterval    time.Duration

	CalendarHorizonDays  int
	OrgEventsHorizonDays int

	// Optional change feed. Enabled when brokers are configured.
	KafkaBrokers         []string
	KafkaChangefeedTopic string
}

// ChangeFeedEnabled reports whether the Kafka change feed should be wired up.
func (c *Config) ChangeFeedEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first if
// present; real environment variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	providerTimeout, err := parseDuration("PROVIDER_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseDatabaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),

		WeatherStemURL:    envOrDefault("WEATHERSTEM_URL", "https://api.weatherstem.com/api"),
		WeatherStemAPIKey: os.Getenv("WEATHERSTEM_API_KEY"),
		WeatherStation:    envOrDefault("WEATHER_STATION", "centcampus"),
		OpenSpaceURL:      os.Getenv("OPENSPACE_URL"),
		OpenSpaceAPIKey:   os.Getenv("OPENSPACE_API_KEY"),
		WaitzURL:          os.Getenv("WAITZ_URL"),
		LocalistURL:       os.Getenv("LOCALIST_URL"),
		EngageEventsURL:   os.Getenv("ENGAGE_EVENTS_URL"),
		EngageOrgsURL:     os.Getenv("ENGAGE_ORGS_URL"),
		EngageAPIKey:      os.Getenv("ENGAGE_API_KEY"),
		AlertFeedURL:      os.Getenv("ALERT_FEED_URL"),
		ProviderTimeout:   providerTimeout,

		AlertTopic: envOrDefault("ALERT_TOPIC", "emergencyAlerts"),

		CalendarHorizonDays:  parsePositiveInt("CALENDAR_HORIZON_DAYS", 7),
		OrgEventsHorizonDays: parsePositiveInt("ORG_EVENTS_HORIZON_DAYS", 90),

		KafkaBrokers:         parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaChangefeedTopic: envOrDefault("KAFKA_CHANGEFEED_TOPIC", "campus-data-changes"),
	}

	for _, iv := range []struct {
		dst *time.Duration
		key string
		def string
	}{
		{&cfg.WeatherInterval, "WEATHER_INTERVAL", "5m"},
		{&cfg.ParkingInterval, "PARKING_INTERVAL", "5m"},
		{&cfg.BusynessInterval, "BUSYNESS_INTERVAL", "10m"},
		{&cfg.CalendarInterval, "CALENDAR_INTERVAL", "1h"},
		{&cfg.OrgEventsInterval, "ORG_EVENTS_INTERVAL", "1h"},
		{&cfg.AlertsInterval, "ALERTS_INTERVAL", "1m"},
	} {
		d, derr := parseDuration(iv.key, iv.def)
		if derr != nil {
			return nil, derr
		}
		*iv.dst = d
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.FirebaseDatabaseURL == "" {
		return nil, errors.New("FIREBASE_DATABASE_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
