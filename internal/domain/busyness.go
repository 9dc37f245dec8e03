package domain

// RawBusynessResponse is the Waitz live endpoint payload.
type RawBusynessResponse struct {
	Data []RawBusynessLocation `json:"data"`
}

// RawBusynessLocation is one monitored location from Waitz.
type RawBusynessLocation struct {
	ID            int                      `json:"id"`
	Name          string                   `json:"name"`
	Busyness      int                      `json:"busyness"` // occupancy percentage 0-100
	Capacity      int                      `json:"capacity"`
	IsOpen        bool                     `json:"isOpen"`
	SubLocs       []RawBusynessSubLocation `json:"subLocs"`
	BestLocations []RawBestLocation        `json:"bestLocations"`
}

// RawBusynessSubLocation is one sub-area of a location.
type RawBusynessSubLocation struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Busyness int    `json:"busyness"`
	Capacity int    `json:"capacity"`
	IsOpen   bool   `json:"isOpen"`
}

// RawBestLocation references the least busy sub-location by id.
type RawBestLocation struct {
	ID int `json:"id"`
}

// NormalizeBusyness maps Waitz locations into the canonical shape. The
// provider id is the identity; records without one are dropped and counted.
// Occupancy and capacity pass through verbatim.
func NormalizeBusyness(raw []RawBusynessLocation) (locations []BusynessLocation, dropped int) {
	locations = make([]BusynessLocation, 0, len(raw))
	for _, r := range raw {
		if r.ID == 0 {
			dropped++
			continue
		}

		subs := make([]BusynessSubLocation, 0, len(r.SubLocs))
		for _, s := range r.SubLocs {
			subs = append(subs, BusynessSubLocation{
				ID:        s.ID,
				Name:      s.Name,
				Occupancy: s.Busyness,
				Capacity:  s.Capacity,
				IsOpen:    s.IsOpen,
				Status:    OccupancyStatus(s.Busyness),
			})
		}

		locations = append(locations, BusynessLocation{
			ID:           r.ID,
			Name:         r.Name,
			Occupancy:    r.Busyness,
			Capacity:     r.Capacity,
			IsOpen:       r.IsOpen,
			Status:       OccupancyStatus(r.Busyness),
			BestSpot:     bestSpot(r),
			SubLocations: subs,
		})
	}
	return locations, dropped
}

// OccupancyStatus converts an occupancy percentage to a status label.
func OccupancyStatus(occupancy int) string {
	switch {
	case occupancy >= 80:
		return "veryHigh"
	case occupancy >= 50:
		return "high"
	case occupancy >= 25:
		return "moderate"
	default:
		return "low"
	}
}

// bestSpot resolves the provider's first bestLocations reference against the
// sub-location list. Nil when the provider reports none or the reference
// does not resolve.
func bestSpot(r RawBusynessLocation) *string {
	if len(r.BestLocations) == 0 {
		return nil
	}
	bestID := r.BestLocations[0].ID
	for _, s := range r.SubLocs {
		if s.ID == bestID {
			name := s.Name
			return &name
		}
	}
	return nil
}
