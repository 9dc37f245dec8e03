// Package domain models the canonical campus data schema and the pure
// normalizers that map each provider's payload into it.
//
// # Providers
//
// Six upstream feeds are normalized:
//
//	WeatherStem  — campus weather station; readings keyed by sensor type
//	               ("Thermometer", "Anemometer", "Hygrometer", ...), values
//	               encoded as strings or numbers depending on sensor.
//	OpenSpace    — parking lot counters; coordinates arrive as a
//	               "(lat, lng)" string, counts as loosely-typed numbers.
//	Waitz        — live space occupancy with nested sub-locations and a
//	               "bestLocations" reference by id.
//	Localist     — campus calendar; each event nested under "event", each
//	               occurrence under "event_instances[].event_instance".
//	Engage       — student organization events; venue in "address",
//	               submitting org referenced by id only.
//	Safety feed  — emergency alerts over RSS (title, link, guid, pubDate).
//
// # Conventions
//
// Canonical output uses camelCase field names regardless of the provider's
// convention; that is the wire contract consumed by the mobile clients.
//
// Optional fields a provider omits become null — never a zero placeholder.
// In particular a coordinate is only emitted when both components are
// present and non-zero; (0,0) would read as a real position.
//
// Occupancy and capacity values pass through verbatim: no unit conversion,
// no clamping. Interpretation is deferred to the consumer.
//
// A normalizer fails (or drops a record from a batch) only when the field
// needed for a stable identity is missing — an event's provider id, a
// parking lot's name, a busyness location's id — because an unidentifiable
// record cannot be merged safely downstream. Everything else degrades to a
// default.
//
// Timestamps: event start/end are ISO-8601 with a UTC offset, converted to
// US Eastern, so the sync engine can re-parse and order them. The
// "lastUpdated" markers use the fixed human-readable layout
// "2006-01-02 03:04:05 PM" rendered in Eastern time, with the DST offset
// resolved from the instant being formatted.
package domain
