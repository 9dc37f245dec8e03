package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// timestampLayout renders lastUpdated markers: "2026-02-18 06:30:00 PM".
// The daylight-saving offset comes from the instant being formatted, not
// from the wall clock at render time.
const timestampLayout = "2006-01-02 03:04:05 PM"

// Eastern is the fixed civil timezone for all campus-facing timestamps.
var Eastern = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("load timezone " + name + ": " + err.Error())
	}
	return loc
}

// FormatTimestamp renders an instant as a lastUpdated marker in Eastern time.
func FormatTimestamp(t time.Time) string {
	return t.In(Eastern).Format(timestampLayout)
}

// ToEasternISO converts an ISO time string to an Eastern-offset ISO-8601
// string. Returns nil for an empty input; returns the input unchanged when it
// cannot be parsed, so a provider quirk degrades to a still-displayable value
// rather than a dropped field.
func ToEasternISO(s string) *string {
	if s == "" {
		return nil
	}
	t, err := parseISO(s)
	if err != nil {
		return &s
	}
	out := t.In(Eastern).Format(time.RFC3339)
	return &out
}

// parseISO accepts RFC 3339 strings and the offset-less variant some
// providers emit, which is interpreted as UTC.
func parseISO(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// ParseEventTime parses a canonical event start/end string.
func ParseEventTime(s string) (time.Time, error) {
	return parseISO(s)
}

// SameCivilDay reports whether two instants fall on the same Eastern date.
func SameCivilDay(a, b time.Time) bool {
	ay, am, ad := a.In(Eastern).Date()
	by, bm, bd := b.In(Eastern).Date()
	return ay == by && am == bm && ad == bd
}

// NumberString decodes a JSON value that providers emit inconsistently as
// either a number or a string, e.g. "72.1" vs 72.1.
type NumberString string

func (n *NumberString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	*n = NumberString(strings.TrimSpace(string(b)))
	return nil
}

func (n NumberString) String() string { return string(n) }
