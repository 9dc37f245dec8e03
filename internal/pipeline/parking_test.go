package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otcampus/campus-feeds/internal/domain"
	"github.com/otcampus/campus-feeds/internal/pipeline"
)

type mockParkingFetcher struct {
	raw []domain.RawParkingLot
	err error
}

func (m *mockParkingFetcher) Fetch(context.Context) ([]domain.RawParkingLot, error) {
	return m.raw, m.err
}

func TestParkingJob_Run(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	fetched := []domain.RawParkingLot{
		{LocationName: "Coliseum Deck", FreeSpaces: "120", TotalSpaces: "1100"},
		{LocationName: "West Lot", FreeSpaces: "40", TotalSpaces: "300"},
	}

	t.Run("overwrites the collection", func(t *testing.T) {
		store := newFakeStore()
		feed := &fakeFeed{}
		job := pipeline.NewParkingJob(&mockParkingFetcher{raw: fetched}, store, feed, clock, slog.Default(), newTestMetrics())

		require.NoError(t, job.Run(context.Background()))

		var coll domain.ParkingCollection
		store.read(t, "liveParking", &coll)
		require.Len(t, coll.Lots, 2)
		assert.Equal(t, 120, coll.Lots["coliseumDeck"].AvailableSpaces)
		assert.Equal(t, "2026-06-15 08:00:00 AM", coll.LastUpdated)
		assert.Equal(t, []string{"liveParking"}, feed.published)
	})

	t.Run("carries the operator-set hidden flag forward", func(t *testing.T) {
		store := newFakeStore()
		store.seed(t, "liveParking", domain.ParkingCollection{Lots: map[string]domain.ParkingLot{
			"coliseumDeck": {ID: "coliseumDeck", Name: "Coliseum Deck", IsHidden: true},
			"vanished":     {ID: "vanished", Name: "Vanished Lot"},
		}})
		job := pipeline.NewParkingJob(&mockParkingFetcher{raw: fetched}, store, nil, clock, slog.Default(), newTestMetrics())

		require.NoError(t, job.Run(context.Background()))

		var coll domain.ParkingCollection
		store.read(t, "liveParking", &coll)
		assert.True(t, coll.Lots["coliseumDeck"].IsHidden)
		assert.False(t, coll.Lots["westLot"].IsHidden)
		assert.NotContains(t, coll.Lots, "vanished") // full replace, stale lots go
	})

	t.Run("empty fetch keeps the previous snapshot", func(t *testing.T) {
		store := newFakeStore()
		store.seed(t, "liveParking", domain.ParkingCollection{Lots: map[string]domain.ParkingLot{
			"coliseumDeck": {ID: "coliseumDeck"},
		}})
		job := pipeline.NewParkingJob(&mockParkingFetcher{}, store, nil, clock, slog.Default(), newTestMetrics())

		require.NoError(t, job.Run(context.Background()))
		assert.Empty(t, store.puts)
	})

	t.Run("all lots nameless keeps the previous snapshot", func(t *testing.T) {
		store := newFakeStore()
		job := pipeline.NewParkingJob(&mockParkingFetcher{raw: []domain.RawParkingLot{{LocationName: ""}}}, store, nil, clock, slog.Default(), newTestMetrics())

		require.NoError(t, job.Run(context.Background()))
		assert.Empty(t, store.puts)
	})

	t.Run("snapshot read failure fails the run", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("connection reset")
		job := pipeline.NewParkingJob(&mockParkingFetcher{raw: fetched}, store, nil, clock, slog.Default(), newTestMetrics())

		require.Error(t, job.Run(context.Background()))
		assert.Empty(t, store.puts)
	})
}
