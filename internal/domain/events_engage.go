package domain

import "encoding/json"

// RawEngageResponse is the Engage events endpoint payload. A non-empty Error
// means the API rejected the request inside a 200 response.
type RawEngageResponse struct {
	Items []RawEngageEvent `json:"items"`
	Error string           `json:"error"`
}

// RawEngageEvent is the provider-shaped organization event.
type RawEngageEvent struct {
	ID                        json.Number      `json:"id"`
	Name                      string           `json:"name"`
	Description               string           `json:"description"`
	StartsOn                  string           `json:"startsOn"`
	EndsOn                    string           `json:"endsOn"`
	Address                   RawEngageAddress `json:"address"`
	ImageURL                  string           `json:"imageUrl"`
	Theme                     string           `json:"theme"`
	Categories                []RawNamed       `json:"categories"`
	Benefits                  []string         `json:"benefits"`
	SubmittedByOrganizationID json.Number      `json:"submittedByOrganizationId"`
}

// RawEngageAddress is the event venue block.
type RawEngageAddress struct {
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	Line1     string       `json:"line1"`
	Latitude  NumberString `json:"latitude"`
	Longitude NumberString `json:"longitude"`
}

// CollectOrgIDs returns the unique submitting-organization ids of a batch,
// in first-seen order, for the batched name lookup.
func CollectOrgIDs(items []RawEngageEvent) []string {
	seen := make(map[string]struct{}, len(items))
	var ids []string
	for _, item := range items {
		id := item.SubmittedByOrganizationID.String()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// NormalizeOrgEvents maps Engage events into canonical EventRecords. The
// provider id is the identity; items without one are dropped and counted.
// The theme is merged with the category names, deduplicated and in order.
// Organization names are resolved through orgNames (id -> name); an
// unresolved id leaves the field null rather than inventing a value.
func NormalizeOrgEvents(items []RawEngageEvent, orgNames map[string]string) (records []EventRecord, dropped int) {
	records = make([]EventRecord, 0, len(items))
	for _, item := range items {
		if item.ID.String() == "" {
			dropped++
			continue
		}

		var categories []string
		if item.Theme != "" {
			categories = append(categories, item.Theme)
		}
		for _, cat := range item.Categories {
			if cat.Name != "" && !containsString(categories, cat.Name) {
				categories = append(categories, cat.Name)
			}
		}

		var organization *string
		if id := item.SubmittedByOrganizationID.String(); id != "" {
			if name, ok := orgNames[id]; ok && name != "" {
				organization = &name
			}
		}

		rec := EventRecord{
			ID:          "engage_" + item.ID.String(),
			Title:       item.Name,
			Description: nonEmpty(CleanHTML(item.Description)),
			AllDay:      false,
			Location: &Location{
				Name:       item.Address.Name,
				Address:    firstNonEmpty(item.Address.Address, item.Address.Line1),
				Coordinate: coordinateFromStrings(item.Address.Latitude.String(), item.Address.Longitude.String()),
			},
			URL:          nil,
			ImageURL:     nonEmpty(item.ImageURL),
			Source:       SourceEngage,
			Categories:   categories,
			Benefits:     item.Benefits,
			Organization: organization,
		}
		if start := ToEasternISO(item.StartsOn); start != nil {
			rec.Start = *start
		}
		rec.End = ToEasternISO(item.EndsOn)

		records = append(records, rec)
	}
	return records, dropped
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
