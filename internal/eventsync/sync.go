// Package eventsync reconciles freshly normalized event batches against the
// persisted collection for the same domain.
package eventsync

import (
	"time"

	"github.com/otcampus/campus-feeds/internal/domain"
)

// Result is the outcome of one merge: the next collection plus churn counts
// for logging and metrics.
type Result struct {
	Collection domain.EventCollection
	Inserted   int
	Updated    int
	Pruned     int
}

// Merge reconciles a batch of records (keyed by id) against the existing
// collection and returns the next collection. It is pure: "now" is supplied
// by the caller.
//
// Records present in the batch replace their stored counterpart wholesale —
// a stale field from a prior fetch must not survive — or are inserted.
//
// Items absent from the batch are pruned when their effective end (end, or
// start when end is null) is before now, or when their start lies inside the
// provider's fetch horizon [now, now+horizon): the provider queried that
// window and did not return the item, so it was cancelled. Items starting
// beyond the horizon were simply not queried this run and are retained.
// An empty batch therefore only prunes; it can never blanket-delete future
// events outside the horizon.
//
// TodayCount is recomputed from scratch over the final item set so it stays
// consistent with item churn.
func Merge(existing domain.EventCollection, batch []domain.EventRecord, now time.Time, horizon time.Duration) Result {
	items := make(map[string]domain.EventRecord, len(existing.Items)+len(batch))

	batchIDs := make(map[string]struct{}, len(batch))
	for _, rec := range batch {
		batchIDs[rec.ID] = struct{}{}
	}

	var res Result
	for id, rec := range existing.Items {
		if _, inBatch := batchIDs[id]; inBatch {
			continue // replaced below
		}
		if shouldPrune(rec, now, horizon) {
			res.Pruned++
			continue
		}
		items[id] = rec
	}

	for _, rec := range batch {
		if _, existed := existing.Items[rec.ID]; existed {
			res.Updated++
		} else {
			res.Inserted++
		}
		items[rec.ID] = rec
	}

	res.Collection = domain.EventCollection{
		LastUpdated: domain.FormatTimestamp(now),
		TodayCount:  countToday(items, now),
		Items:       items,
	}
	return res
}

// shouldPrune decides the fate of a stored item the current batch did not
// return. Items whose times are unparseable are retained: absence cannot be
// proven against a value that cannot be ordered.
func shouldPrune(rec domain.EventRecord, now time.Time, horizon time.Duration) bool {
	end, ok := effectiveEnd(rec)
	if ok && end.Before(now) {
		return true
	}
	start, err := domain.ParseEventTime(rec.Start)
	if err != nil {
		return false
	}
	return !start.Before(now) && start.Before(now.Add(horizon))
}

// effectiveEnd returns the instant an item stops being current: its end, or
// its start for events with no end time.
func effectiveEnd(rec domain.EventRecord) (time.Time, bool) {
	if rec.End != nil {
		if t, err := domain.ParseEventTime(*rec.End); err == nil {
			return t, true
		}
	}
	if t, err := domain.ParseEventTime(rec.Start); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// countToday counts items whose start falls on today's civil date in the
// fixed timezone.
func countToday(items map[string]domain.EventRecord, now time.Time) int {
	count := 0
	for _, rec := range items {
		start, err := domain.ParseEventTime(rec.Start)
		if err != nil {
			continue
		}
		if domain.SameCivilDay(start, now) {
			count++
		}
	}
	return count
}
