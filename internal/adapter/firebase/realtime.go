package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/otcampus/campus-feeds/internal/domain"
)

// RealtimeStore implements pipeline.OverwriteStore on the Realtime Database.
type RealtimeStore struct {
	client *db.Client
	logger *slog.Logger
}

// NewRealtimeStore creates the RTDB-backed overwrite store.
func NewRealtimeStore(ctx context.Context, app *firebase.App, logger *slog.Logger) (*RealtimeStore, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize realtime database client: %w", err)
	}
	return &RealtimeStore{client: client, logger: logger}, nil
}

// Put replaces the value at path wholesale.
func (s *RealtimeStore) Put(ctx context.Context, path string, doc any) error {
	if err := s.client.NewRef(path).Set(ctx, doc); err != nil {
		return domain.StoreError(path, err)
	}
	return nil
}

// Get reads the value at path into v. A missing path leaves v untouched;
// callers treat the zero value as "nothing persisted yet".
func (s *RealtimeStore) Get(ctx context.Context, path string, v any) error {
	if err := s.client.NewRef(path).Get(ctx, v); err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	return nil
}
