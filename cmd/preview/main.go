// Command preview runs a saved provider payload through the normalizer and
// prints the canonical document, without touching any backend. It uses the
// actual domain package, so the output matches real sync behavior.
//
// Usage:
//
//	go run ./cmd/preview -domain weather -in testdata/weatherstem.json
//	curl -s "$WAITZ_URL" | go run ./cmd/preview -domain busyness
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/otcampus/campus-feeds/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("domain", "", "domain to normalize: weather, parking, busyness, calendar, orgevents, alerts")
	in := flag.String("in", "", "input file with the raw provider payload (default stdin)")
	at := flag.String("at", "", "reference time as RFC 3339 (default now); weather uses it for sunrise/sunset")
	flag.Parse()

	if *name == "" {
		flag.Usage()
		return fmt.Errorf("missing -domain")
	}

	now := time.Now()
	if *at != "" {
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		now = parsed
	}

	raw, err := readInput(*in)
	if err != nil {
		return err
	}

	doc, dropped, err := normalize(*name, raw, now)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "dropped %d malformed record(s)\n", dropped)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func normalize(name string, raw []byte, now time.Time) (doc any, dropped int, err error) {
	switch name {
	case "weather":
		station, err := decodeStation(raw)
		if err != nil {
			return nil, 0, err
		}
		snapshot, err := domain.NormalizeWeather(station, now)
		return snapshot, 0, err

	case "parking":
		var lots []domain.RawParkingLot
		if err := json.Unmarshal(raw, &lots); err != nil {
			return nil, 0, fmt.Errorf("decode parking payload: %w", err)
		}
		normalized, dropped := domain.NormalizeParking(lots)
		return normalized, dropped, nil

	case "busyness":
		locations, err := decodeBusyness(raw)
		if err != nil {
			return nil, 0, err
		}
		normalized, dropped := domain.NormalizeBusyness(locations)
		return normalized, dropped, nil

	case "calendar":
		var page domain.RawLocalistResponse
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, 0, fmt.Errorf("decode localist payload: %w", err)
		}
		records, dropped := domain.NormalizeCalendarEvents(page.Events)
		return records, dropped, nil

	case "orgevents":
		var resp domain.RawEngageResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, 0, fmt.Errorf("decode engage payload: %w", err)
		}
		// Organization names need a live lookup; the preview leaves them null.
		records, dropped := domain.NormalizeOrgEvents(resp.Items, nil)
		return records, dropped, nil

	case "alerts":
		return decodeAlert(raw)

	default:
		return nil, 0, fmt.Errorf("unknown domain %q", name)
	}
}

// decodeStation accepts both WeatherStem response shapes, a station list or a
// single station object.
func decodeStation(raw []byte) (domain.RawWeatherStation, error) {
	var stations []domain.RawWeatherStation
	if err := json.Unmarshal(raw, &stations); err == nil {
		if len(stations) == 0 {
			return domain.RawWeatherStation{}, fmt.Errorf("empty station list")
		}
		return stations[0], nil
	}
	var station domain.RawWeatherStation
	if err := json.Unmarshal(raw, &station); err != nil {
		return domain.RawWeatherStation{}, fmt.Errorf("decode weatherstem payload: %w", err)
	}
	return station, nil
}

// decodeBusyness accepts the wrapped {"data": [...]} shape or a bare array.
func decodeBusyness(raw []byte) ([]domain.RawBusynessLocation, error) {
	var wrapped domain.RawBusynessResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var locations []domain.RawBusynessLocation
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, fmt.Errorf("decode waitz payload: %w", err)
	}
	return locations, nil
}

// decodeAlert parses an RSS/Atom document and normalizes its newest item.
func decodeAlert(raw []byte) (any, int, error) {
	feed, err := gofeed.NewParser().ParseString(string(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("parse alert feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, 0, fmt.Errorf("alert feed has no items")
	}

	latest := feed.Items[0]
	for _, item := range feed.Items[1:] {
		if item.PublishedParsed != nil && latest.PublishedParsed != nil &&
			item.PublishedParsed.After(*latest.PublishedParsed) {
			latest = item
		}
	}

	record, err := domain.NormalizeAlert(domain.RawAlertItem{
		Title:           latest.Title,
		Description:     latest.Description,
		Link:            latest.Link,
		GUID:            latest.GUID,
		Published:       latest.Published,
		PublishedParsed: latest.PublishedParsed,
	})
	return record, 0, err
}
