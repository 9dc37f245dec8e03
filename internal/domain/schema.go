package domain

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Location describes a physical place as supplied by a provider. Fields the
// provider omits stay nil and serialize as null; a coordinate is never
// fabricated because (0,0) would read as a real position.
type Location struct {
	Name       string      `json:"name,omitempty" firestore:"name,omitempty"`
	Address    *string     `json:"address" firestore:"address"`
	Coordinate *Coordinate `json:"coordinate" firestore:"coordinate"`
}

// EventSource identifies which provider an event came from.
type EventSource string

const (
	SourceLocalist EventSource = "localist"
	SourceEngage   EventSource = "engage"
)

// EventRecord is the canonical event shape shared by the calendar and
// organization-event domains. IDs are provider-namespaced
// ("localist_123", "engage_456") so the two feeds can never collide.
// Start and End are ISO-8601 strings with a UTC offset so the sync engine
// can re-parse and order them.
type EventRecord struct {
	ID           string      `json:"id" firestore:"id"`
	Title        string      `json:"title" firestore:"title"`
	Description  *string     `json:"description" firestore:"description"`
	Start        string      `json:"start" firestore:"start"`
	End          *string     `json:"end" firestore:"end"`
	AllDay       bool        `json:"allDay" firestore:"allDay"`
	Location     *Location   `json:"location" firestore:"location"`
	URL          *string     `json:"url" firestore:"url"`
	ImageURL     *string     `json:"imageUrl" firestore:"imageUrl"`
	Source       EventSource `json:"source" firestore:"source"`
	Categories   []string    `json:"categories" firestore:"categories"`
	Department   *string     `json:"department,omitempty" firestore:"department,omitempty"`
	Organization *string     `json:"organization,omitempty" firestore:"organization,omitempty"`
	Benefits     []string    `json:"benefits,omitempty" firestore:"benefits,omitempty"`
}

// EventCollection is the persisted document for one event domain.
// TodayCount is derived and recomputed on every sync, never patched.
type EventCollection struct {
	LastUpdated string                 `json:"lastUpdated" firestore:"lastUpdated"`
	TodayCount  int                    `json:"todayCount" firestore:"todayCount"`
	Items       map[string]EventRecord `json:"items" firestore:"items"`
}

// AlertRecord is the canonical emergency alert shape.
type AlertRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}

// AlertState is the persisted dedup watermark: the identity of the last
// alert that completed the store-write/notify/watermark sequence.
type AlertState struct {
	LastAlertID      *string `json:"lastAlertId"`
	LastAlertPubDate *string `json:"lastAlertPubDate"`
}

// Wind is the wind block of a WeatherSnapshot.
type Wind struct {
	Speed     int    `json:"speed"`
	Gust      int    `json:"gust"`
	Direction string `json:"direction"`
	Degrees   int    `json:"degrees"`
}

// Rain is the rain block of a WeatherSnapshot.
type Rain struct {
	Rate  float64 `json:"rate"`
	Total float64 `json:"total"`
}

// WeatherSnapshot is the point-in-time weather document, overwritten
// wholesale on every successful fetch. Sunrise and Sunset are unix seconds,
// nil when the calculation was not possible.
type WeatherSnapshot struct {
	Temperature    int     `json:"temperature"`
	FeelsLike      int     `json:"feelsLike"`
	Humidity       int     `json:"humidity"`
	Wind           Wind    `json:"wind"`
	UVIndex        int     `json:"uvIndex"`
	Rain           Rain    `json:"rain"`
	SolarRadiation int     `json:"solarRadiation"`
	Sunrise        *int64  `json:"sunrise"`
	Sunset         *int64  `json:"sunset"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	LastUpdated    string  `json:"lastUpdated"`
}

// ParkingLot is one lot in the live parking collection. Space counts are
// copied verbatim from the provider; interpretation is left to the consumer.
type ParkingLot struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Location        Location `json:"location"`
	TotalSpaces     int      `json:"totalSpaces"`
	AvailableSpaces int      `json:"availableSpaces"`
	Occupancy       int      `json:"occupancy"`
	IsHidden        bool     `json:"isHidden"`
}

// ParkingCollection is the persisted live parking document.
type ParkingCollection struct {
	LastUpdated string                `json:"lastUpdated"`
	Lots        map[string]ParkingLot `json:"lots"`
}

// BusynessSubLocation is one sub-area of a monitored location.
type BusynessSubLocation struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Occupancy int    `json:"occupancy"`
	Capacity  int    `json:"capacity"`
	IsOpen    bool   `json:"isOpen"`
	Status    string `json:"status"`
}

// BusynessLocation is one monitored location with its sub-areas.
// BestSpot names the least busy open sub-location, when the provider
// reports one.
type BusynessLocation struct {
	ID           int                   `json:"id"`
	Name         string                `json:"name"`
	Occupancy    int                   `json:"occupancy"`
	Capacity     int                   `json:"capacity"`
	IsOpen       bool                  `json:"isOpen"`
	Status       string                `json:"status"`
	BestSpot     *string               `json:"bestSpot"`
	SubLocations []BusynessSubLocation `json:"subLocations"`
}

// BusynessCollection is the persisted campus busyness document.
type BusynessCollection struct {
	LastUpdated string                      `json:"lastUpdated"`
	Locations   map[string]BusynessLocation `json:"locations"`
}
