package domain

import (
	"strings"
	"unicode"
)

// RawParkingLot is one lot from the OpenSpace multi-lot-info endpoint.
type RawParkingLot struct {
	LocationName    string       `json:"location_name"`
	LocationAddress string       `json:"location_address"`
	Geocode         string       `json:"geocode"` // "(lat, lng)"
	TotalSpaces     NumberString `json:"total_spaces"`
	FreeSpaces      NumberString `json:"free_spaces"`
	Occupancy       NumberString `json:"occupancy"`
}

// NormalizeParking maps OpenSpace lots into the canonical shape. The lot name
// is the identity (the stable key is derived from it); nameless records are
// dropped and counted so the caller can log them. Space counts pass through
// verbatim. IsHidden defaults to false; the parking job carries the
// operator-set flag forward from the previous snapshot.
func NormalizeParking(raw []RawParkingLot) (lots []ParkingLot, dropped int) {
	lots = make([]ParkingLot, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.LocationName) == "" {
			dropped++
			continue
		}
		lots = append(lots, ParkingLot{
			ID:   LotKey(r.LocationName),
			Name: r.LocationName,
			Location: Location{
				Address:    nonEmpty(r.LocationAddress),
				Coordinate: parseGeocode(r.Geocode),
			},
			TotalSpaces:     parseIntOrZero(r.TotalSpaces.String()),
			AvailableSpaces: parseIntOrZero(r.FreeSpaces.String()),
			Occupancy:       parseIntOrZero(r.Occupancy.String()),
		})
	}
	return lots, dropped
}

// LotKey derives a camelCase document key from a lot name:
// "Coliseum Deck" -> "coliseumDeck".
func LotKey(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// parseGeocode parses the provider's "(lat, lng)" string. Anything that does
// not yield two numbers produces nil, never a zeroed coordinate.
func parseGeocode(s string) *Coordinate {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lat := strings.TrimSpace(parts[0])
	lng := strings.TrimSpace(parts[1])
	if lat == "" || lng == "" {
		return nil
	}
	latF := parseFloatOrDefault(lat, invalidCoord)
	lngF := parseFloatOrDefault(lng, invalidCoord)
	if latF == invalidCoord || lngF == invalidCoord {
		return nil
	}
	return &Coordinate{Lat: latF, Lng: lngF}
}

// invalidCoord is outside the valid latitude/longitude range and marks a
// parse failure distinctly from a legitimate 0 value.
const invalidCoord = -1000

// parseIntOrZero truncates a numeric string to int, 0 on failure.
func parseIntOrZero(s string) int {
	return int(parseFloatOrZero(s))
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
