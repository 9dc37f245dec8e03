package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Campus coordinates, used for sunrise/sunset calculation.
const (
	CampusLat = 35.7717255492
	CampusLng = -78.6736536026
)

// windDirections are the 16 compass points, clockwise from north.
// A wind vane reading is bucketed into 22.5 degree sectors.
var windDirections = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// RawWeatherStation is one station object from the WeatherStem API.
type RawWeatherStation struct {
	Record  RawWeatherRecord `json:"record"`
	Station RawStationInfo   `json:"station"`
}

// RawWeatherRecord holds the sensor readings of the latest observation.
type RawWeatherRecord struct {
	Readings []RawWeatherReading `json:"readings"`
}

// RawWeatherReading is a single sensor value, keyed by sensor type
// ("Thermometer", "Anemometer", "Hygrometer", ...).
type RawWeatherReading struct {
	SensorType string       `json:"sensor_type"`
	Value      NumberString `json:"value"`
}

// RawStationInfo carries station metadata, including camera feeds.
type RawStationInfo struct {
	Cameras []RawStationCamera `json:"cameras"`
}

// RawStationCamera is one camera attached to the station.
type RawStationCamera struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NormalizeWeather maps a WeatherStem station payload into the canonical
// snapshot. The thermometer reading is the identity of the observation; its
// absence makes the payload malformed. Every other sensor falls back to zero
// and sunrise/sunset fall back to nil.
func NormalizeWeather(raw RawWeatherStation, now time.Time) (WeatherSnapshot, error) {
	readings := make(map[string]string, len(raw.Record.Readings))
	for _, r := range raw.Record.Readings {
		readings[r.SensorType] = r.Value.String()
	}

	tempStr, ok := readings["Thermometer"]
	if !ok || strings.TrimSpace(tempStr) == "" {
		return WeatherSnapshot{}, MalformedError("weatherstem payload has no Thermometer reading")
	}
	temp := parseFloatOrZero(tempStr)

	windSpeed := parseFloatOrZero(readings["Anemometer"])
	humidity := parseFloatOrZero(readings["Hygrometer"])
	windChill := parseFloatOrDefault(readings["Wind Chill"], temp)
	heatIndex := parseFloatOrDefault(readings["Heat Index"], temp)
	vane := parseFloatOrZero(readings["Wind Vane"])

	snap := WeatherSnapshot{
		Temperature: int(math.Round(temp)),
		FeelsLike:   feelsLike(temp, windChill, heatIndex, windSpeed, humidity),
		Humidity:    int(humidity),
		Wind: Wind{
			Speed:     int(windSpeed),
			Gust:      int(parseFloatOrZero(readings["10 Minute Wind Gust"])),
			Direction: windDirectionLabel(vane),
			Degrees:   int(vane),
		},
		UVIndex: int(parseFloatOrZero(readings["UV Radiation Sensor"])),
		Rain: Rain{
			Rate:  parseFloatOrZero(readings["Rain Rate"]),
			Total: parseFloatOrZero(readings["Rain Gauge"]),
		},
		SolarRadiation: int(parseFloatOrZero(readings["Solar Radiation Sensor"])),
		LastUpdated:    FormatTimestamp(now),
	}

	if rise, set, ok := sunriseSunset(now); ok {
		snap.Sunrise = &rise
		snap.Sunset = &set
	}

	for _, cam := range raw.Station.Cameras {
		if cam.Name == "Cloud Camera" && cam.Image != "" {
			img := cam.Image
			snap.ImageURL = &img
			break
		}
	}

	return snap, nil
}

// feelsLike applies the NWS rule: wind chill for cold windy conditions,
// heat index for hot humid ones, otherwise the plain temperature.
func feelsLike(temp, windChill, heatIndex, windSpeed, humidity float64) int {
	switch {
	case temp <= 50 && windSpeed > 3:
		return int(math.Round(windChill))
	case temp >= 80 && humidity > 40:
		return int(math.Round(heatIndex))
	default:
		return int(math.Round(temp))
	}
}

// windDirectionLabel buckets a wind vane bearing into a compass point.
func windDirectionLabel(degrees float64) string {
	index := int(math.Round(degrees/22.5)) % 16
	if index < 0 {
		index += 16
	}
	return windDirections[index]
}

// sunriseSunset computes today's sunrise and sunset for the campus as unix
// seconds. Returns ok=false when the library reports no event (polar edge
// cases), so the snapshot carries null rather than a fabricated value.
func sunriseSunset(now time.Time) (int64, int64, bool) {
	y, m, d := now.In(Eastern).Date()
	rise, set := sunrise.SunriseSunset(CampusLat, CampusLng, y, m, d)
	if rise.IsZero() || set.IsZero() {
		return 0, 0, false
	}
	return rise.Unix(), set.Unix(), true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	return parseFloatOrDefault(s, 0)
}

func parseFloatOrDefault(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
