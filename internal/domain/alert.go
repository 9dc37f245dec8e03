package domain

import "time"

// RawAlertItem is one entry from the campus safety feed, already flattened
// by the feed adapter.
type RawAlertItem struct {
	Title           string
	Description     string
	Link            string
	GUID            string
	Published       string
	PublishedParsed *time.Time
}

// NormalizeAlert maps a feed item into the canonical alert record. An item
// with no identity at all (no guid, no link, no title/pubDate pair) cannot be
// deduplicated and is malformed.
func NormalizeAlert(raw RawAlertItem) (AlertRecord, error) {
	if AlertIdentity(raw) == "" {
		return AlertRecord{}, MalformedError("alert feed item has no guid, link, or title")
	}
	return AlertRecord{
		Title:       raw.Title,
		Description: CleanHTML(raw.Description),
		Link:        raw.Link,
		PubDate:     alertPubDate(raw),
	}, nil
}

// AlertIdentity derives the dedup identity of a feed item: the guid when the
// feed supplies one, else the link, else the title/pubDate pair.
func AlertIdentity(raw RawAlertItem) string {
	if raw.GUID != "" {
		return raw.GUID
	}
	if raw.Link != "" {
		return raw.Link
	}
	if raw.Title != "" {
		return raw.Title + "|" + alertPubDate(raw)
	}
	return ""
}

func alertPubDate(raw RawAlertItem) string {
	if raw.PublishedParsed != nil {
		return raw.PublishedParsed.In(Eastern).Format(time.RFC3339)
	}
	return raw.Published
}
