package domain

import "encoding/json"

// RawLocalistResponse is one page of the Localist events API.
type RawLocalistResponse struct {
	Events []RawLocalistItem `json:"events"`
	Page   RawLocalistPage   `json:"page"`
}

// RawLocalistPage carries pagination metadata.
type RawLocalistPage struct {
	Total int `json:"total"`
}

// RawLocalistItem wraps a single event; Localist nests each event under an
// "event" key.
type RawLocalistItem struct {
	Event RawLocalistEvent `json:"event"`
}

// RawLocalistEvent is the provider-shaped calendar event.
type RawLocalistEvent struct {
	ID              json.Number          `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	DescriptionText string               `json:"description_text"`
	LocationName    string               `json:"location_name"`
	Address         string               `json:"address"`
	LocalistURL     string               `json:"localist_url"`
	URL             string               `json:"url"`
	PhotoURL        string               `json:"photo_url"`
	Geo             RawLocalistGeo       `json:"geo"`
	EventInstances  []RawLocalistWrapper `json:"event_instances"`
	Filters         RawLocalistFilters   `json:"filters"`
	Departments     []RawNamed           `json:"departments"`
}

// RawLocalistGeo carries coordinates as strings, the provider's encoding.
type RawLocalistGeo struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// RawLocalistWrapper nests each instance under an "event_instance" key.
type RawLocalistWrapper struct {
	EventInstance RawLocalistInstance `json:"event_instance"`
}

// RawLocalistInstance is one scheduled occurrence of an event.
type RawLocalistInstance struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	AllDay bool   `json:"all_day"`
}

// RawLocalistFilters holds the event type taxonomy.
type RawLocalistFilters struct {
	EventTypes []RawNamed `json:"event_types"`
}

// RawNamed is a {name: ...} object used across provider taxonomies.
type RawNamed struct {
	Name string `json:"name"`
}

// NormalizeCalendarEvents maps Localist items into canonical EventRecords.
// The provider id is the identity; items without one are dropped and counted.
// Times come from the first event instance and are converted to Eastern
// ISO-8601. Descriptions are HTML-stripped with a plain-text fallback.
func NormalizeCalendarEvents(items []RawLocalistItem) (records []EventRecord, dropped int) {
	records = make([]EventRecord, 0, len(items))
	for _, item := range items {
		e := item.Event
		if e.ID.String() == "" {
			dropped++
			continue
		}

		var instance RawLocalistInstance
		if len(e.EventInstances) > 0 {
			instance = e.EventInstances[0].EventInstance
		}

		var categories []string
		for _, et := range e.Filters.EventTypes {
			if et.Name != "" {
				categories = append(categories, et.Name)
			}
		}

		var department *string
		if len(e.Departments) > 0 && e.Departments[0].Name != "" {
			department = nonEmpty(e.Departments[0].Name)
		}

		rec := EventRecord{
			ID:          "localist_" + e.ID.String(),
			Title:       e.Title,
			Description: eventDescription(e.Description, e.DescriptionText),
			AllDay:      instance.AllDay,
			Location: &Location{
				Name:       e.LocationName,
				Address:    nonEmpty(e.Address),
				Coordinate: coordinateFromStrings(e.Geo.Latitude, e.Geo.Longitude),
			},
			URL:        firstNonEmpty(e.LocalistURL, e.URL),
			ImageURL:   nonEmpty(e.PhotoURL),
			Source:     SourceLocalist,
			Categories: categories,
			Department: department,
		}
		if start := ToEasternISO(instance.Start); start != nil {
			rec.Start = *start
		}
		rec.End = ToEasternISO(instance.End)

		records = append(records, rec)
	}
	return records, dropped
}

// eventDescription strips HTML from the rich description, falling back to the
// provider's plain-text field, and finally to null.
func eventDescription(html, plain string) *string {
	if cleaned := CleanHTML(html); cleaned != "" {
		return &cleaned
	}
	return nonEmpty(plain)
}

// coordinateFromStrings builds a Coordinate from string lat/lng fields.
// Empty or zero components yield nil; a (0,0) coordinate would imply a real
// location in the Gulf of Guinea.
func coordinateFromStrings(lat, lng string) *Coordinate {
	if lat == "" || lng == "" {
		return nil
	}
	latF := parseFloatOrZero(lat)
	lngF := parseFloatOrZero(lng)
	if latF == 0 || lngF == 0 {
		return nil
	}
	return &Coordinate{Lat: latF, Lng: lngF}
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}
