package firebase

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/otcampus/campus-feeds/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DocumentStore implements pipeline.DocumentStore on Firestore.
type DocumentStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewDocumentStore creates the Firestore-backed document store.
func NewDocumentStore(ctx context.Context, app *firebase.App, logger *slog.Logger) (*DocumentStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}
	return &DocumentStore{client: client, logger: logger}, nil
}

// SetDocument upserts the full document at collection/id.
func (s *DocumentStore) SetDocument(ctx context.Context, collection, id string, doc any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		return domain.StoreError(collection+"/"+id, err)
	}
	return nil
}

// GetDocument reads the document at collection/id into v. Returns
// found=false, with v untouched, when the document does not exist yet.
func (s *DocumentStore) GetDocument(ctx context.Context, collection, id string, v any) (bool, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s/%s: %w", collection, id, err)
	}
	if err := snap.DataTo(v); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// Close releases the underlying gRPC connection.
func (s *DocumentStore) Close() error {
	return s.client.Close()
}
