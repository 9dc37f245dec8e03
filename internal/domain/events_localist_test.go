package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCalendarEvents(t *testing.T) {
	t.Run("full event payload", func(t *testing.T) {
		payload := []byte(`{
			"events": [
				{
					"event": {
						"id": 48120977,
						"title": "Spring Involvement Fair",
						"description": "<p>Meet <b>200+</b> student organizations.</p>",
						"description_text": "Meet 200+ student organizations.",
						"location_name": "Stafford Commons",
						"address": "2610 Cates Ave, Raleigh, NC",
						"localist_url": "https://calendar.example.edu/event/spring_fair",
						"url": "https://union.example.edu/fair",
						"photo_url": "https://calendar.example.edu/img/fair.jpg",
						"geo": {"latitude": "35.7839", "longitude": "-78.6706"},
						"event_instances": [
							{"event_instance": {"start": "2026-03-25T14:00:00-04:00", "end": "2026-03-25T17:00:00-04:00", "all_day": false}}
						],
						"filters": {"event_types": [{"name": "Fair"}, {"name": "Student Life"}]},
						"departments": [{"name": "Student Involvement"}]
					}
				}
			],
			"page": {"total": 1}
		}`)
		var resp RawLocalistResponse
		require.NoError(t, json.Unmarshal(payload, &resp))

		records, dropped := NormalizeCalendarEvents(resp.Events)
		require.Len(t, records, 1)
		assert.Zero(t, dropped)

		rec := records[0]
		assert.Equal(t, "localist_48120977", rec.ID)
		assert.Equal(t, "Spring Involvement Fair", rec.Title)
		assert.Equal(t, "2026-03-25T14:00:00-04:00", rec.Start)
		require.NotNil(t, rec.End)
		assert.Equal(t, "2026-03-25T17:00:00-04:00", *rec.End)
		assert.False(t, rec.AllDay)
		assert.Equal(t, SourceLocalist, rec.Source)

		require.NotNil(t, rec.Description)
		assert.Equal(t, "Meet 200+ student organizations.", *rec.Description)

		// localist_url wins over the external url.
		require.NotNil(t, rec.URL)
		assert.Equal(t, "https://calendar.example.edu/event/spring_fair", *rec.URL)

		require.NotNil(t, rec.ImageURL)
		assert.Equal(t, "https://calendar.example.edu/img/fair.jpg", *rec.ImageURL)

		assert.Equal(t, []string{"Fair", "Student Life"}, rec.Categories)
		require.NotNil(t, rec.Department)
		assert.Equal(t, "Student Involvement", *rec.Department)

		require.NotNil(t, rec.Location)
		assert.Equal(t, "Stafford Commons", rec.Location.Name)
		require.NotNil(t, rec.Location.Coordinate)
		assert.Equal(t, 35.7839, rec.Location.Coordinate.Lat)
	})

	t.Run("missing id is dropped and counted", func(t *testing.T) {
		items := []RawLocalistItem{
			{Event: RawLocalistEvent{Title: "Orphan"}},
			{Event: RawLocalistEvent{ID: json.Number("9"), Title: "Kept"}},
		}
		records, dropped := NormalizeCalendarEvents(items)
		require.Len(t, records, 1)
		assert.Equal(t, 1, dropped)
		assert.Equal(t, "localist_9", records[0].ID)
	})

	t.Run("description falls back to plain text", func(t *testing.T) {
		items := []RawLocalistItem{{Event: RawLocalistEvent{
			ID:              json.Number("9"),
			DescriptionText: "plain only",
		}}}
		records, _ := NormalizeCalendarEvents(items)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Description)
		assert.Equal(t, "plain only", *records[0].Description)
	})

	t.Run("zero coordinate stays null", func(t *testing.T) {
		items := []RawLocalistItem{{Event: RawLocalistEvent{
			ID:  json.Number("9"),
			Geo: RawLocalistGeo{Latitude: "0", Longitude: "0"},
		}}}
		records, _ := NormalizeCalendarEvents(items)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Location.Coordinate)
	})

	t.Run("no instances leaves times empty", func(t *testing.T) {
		items := []RawLocalistItem{{Event: RawLocalistEvent{ID: json.Number("9")}}}
		records, _ := NormalizeCalendarEvents(items)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Start)
		assert.Nil(t, records[0].End)
		assert.Nil(t, records[0].Description)
		assert.Nil(t, records[0].URL)
	})

	t.Run("all-day instance carries through", func(t *testing.T) {
		items := []RawLocalistItem{{Event: RawLocalistEvent{
			ID: json.Number("9"),
			EventInstances: []RawLocalistWrapper{
				{EventInstance: RawLocalistInstance{Start: "2026-03-25T00:00:00-04:00", AllDay: true}},
			},
		}}}
		records, _ := NormalizeCalendarEvents(items)
		require.Len(t, records, 1)
		assert.True(t, records[0].AllDay)
	})
}
