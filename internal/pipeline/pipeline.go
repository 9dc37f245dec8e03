// Package pipeline wires each domain's fetch-normalize-persist pass and the
// invocation boundary around it. Collaborators (providers, stores, the push
// notifier, the optional change feed) are declared as interfaces here and
// implemented under internal/adapter.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/otcampus/campus-feeds/internal/observability"
)

// Job is one domain's complete sync pass.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// OverwriteStore replaces or reads whole documents at a path. Used for the
// sensor-like domains (weather, parking, busyness) and the alert state.
type OverwriteStore interface {
	Put(ctx context.Context, path string, doc any) error
	Get(ctx context.Context, path string, v any) error
}

// DocumentStore upserts full documents at a stable id within a collection.
// GetDocument reports found=false for a document that does not exist yet.
type DocumentStore interface {
	SetDocument(ctx context.Context, collection, id string, doc any) error
	GetDocument(ctx context.Context, collection, id string, v any) (bool, error)
}

// Notifier dispatches a push notification to a topic. Fire-and-forget,
// at-least-once: a returned nil means the dispatch was accepted, not
// necessarily delivered.
type Notifier interface {
	Send(ctx context.Context, topic, title, body string, data map[string]string) error
}

// ChangeFeed receives a copy of every persisted canonical document.
// Optional; jobs treat a nil feed as disabled and publish failures as
// log-only.
type ChangeFeed interface {
	Publish(ctx context.Context, path string, doc any) error
}

// publishChange mirrors a persisted document onto the change feed, best
// effort. A feed outage must never fail a sync run.
func publishChange(ctx context.Context, feed ChangeFeed, metrics *observability.Metrics, logger *slog.Logger, path string, doc any) {
	if feed == nil {
		return
	}
	if err := feed.Publish(ctx, path, doc); err != nil {
		logger.Warn("change feed publish failed", "path", path, "error", err)
		metrics.ChangeFeedErrors.Inc()
		return
	}
	metrics.ChangeFeedPublished.Inc()
}
