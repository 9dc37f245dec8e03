package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "campus-test")
	t.Setenv("FIREBASE_DATABASE_URL", "https://campus-test.firebaseio.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "campus-test", cfg.FirebaseProjectID)
	assert.Equal(t, "https://api.weatherstem.com/api", cfg.WeatherStemURL)
	assert.Equal(t, "centcampus", cfg.WeatherStation)
	assert.Equal(t, "emergencyAlerts", cfg.AlertTopic)
	assert.Equal(t, 5*time.Minute, cfg.WeatherInterval)
	assert.Equal(t, 5*time.Minute, cfg.ParkingInterval)
	assert.Equal(t, 10*time.Minute, cfg.BusynessInterval)
	assert.Equal(t, time.Hour, cfg.CalendarInterval)
	assert.Equal(t, time.Hour, cfg.OrgEventsInterval)
	assert.Equal(t, time.Minute, cfg.AlertsInterval)
	assert.Equal(t, 7, cfg.CalendarHorizonDays)
	assert.Equal(t, 90, cfg.OrgEventsHorizonDays)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.ChangeFeedEnabled())
	assert.Equal(t, "campus-data-changes", cfg.KafkaChangefeedTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("WEATHER_STATION", "northcampus")
	t.Setenv("ALERT_TOPIC", "campusAlerts")
	t.Setenv("WEATHER_INTERVAL", "1m")
	t.Setenv("CALENDAR_HORIZON_DAYS", "14")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_CHANGEFEED_TOPIC", "custom-changes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "northcampus", cfg.WeatherStation)
	assert.Equal(t, "campusAlerts", cfg.AlertTopic)
	assert.Equal(t, time.Minute, cfg.WeatherInterval)
	assert.Equal(t, 14, cfg.CalendarHorizonDays)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.ChangeFeedEnabled())
	assert.Equal(t, "custom-changes", cfg.KafkaChangefeedTopic)
}

func TestLoad_MissingProjectID(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("FIREBASE_DATABASE_URL", "https://campus-test.firebaseio.com")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "campus-test")
	t.Setenv("FIREBASE_DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_DATABASE_URL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALERTS_INTERVAL", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALERTS_INTERVAL")
}

func TestLoad_InvalidHorizonFallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CALENDAR_HORIZON_DAYS", "zero")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CalendarHorizonDays)
}
