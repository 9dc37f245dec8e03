package pipeline_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcampus/campus-feeds/internal/observability"
)

// --- fakes ---

// fakeStore is an in-memory OverwriteStore. Documents round-trip through
// JSON so reads observe exactly what a real store would return.
type fakeStore struct {
	mu     sync.Mutex
	docs   map[string][]byte
	puts   []string
	getErr error
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]byte)}
}

func (s *fakeStore) Put(_ context.Context, path string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.docs[path] = b
	s.puts = append(s.puts, path)
	return nil
}

func (s *fakeStore) Get(_ context.Context, path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return s.getErr
	}
	b, ok := s.docs[path]
	if !ok {
		return nil // missing path leaves v untouched, like the real store
	}
	return json.Unmarshal(b, v)
}

// seed stores a document directly, bypassing the put log.
func (s *fakeStore) seed(t *testing.T, path string, doc any) {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	s.mu.Lock()
	s.docs[path] = b
	s.mu.Unlock()
}

// read unmarshals a stored document into v.
func (s *fakeStore) read(t *testing.T, path string, v any) {
	t.Helper()
	s.mu.Lock()
	b, ok := s.docs[path]
	s.mu.Unlock()
	require.True(t, ok, "no document at %q", path)
	require.NoError(t, json.Unmarshal(b, v))
}

// fakeDocStore is an in-memory DocumentStore keyed by collection/id.
type fakeDocStore struct {
	mu     sync.Mutex
	docs   map[string][]byte
	sets   []string
	getErr error
	setErr error
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string][]byte)}
}

func docKey(collection, id string) string { return collection + "/" + id }

func (s *fakeDocStore) SetDocument(_ context.Context, collection, id string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	key := docKey(collection, id)
	s.docs[key] = b
	s.sets = append(s.sets, key)
	return nil
}

func (s *fakeDocStore) GetDocument(_ context.Context, collection, id string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return false, s.getErr
	}
	b, ok := s.docs[docKey(collection, id)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (s *fakeDocStore) seed(t *testing.T, collection, id string, doc any) {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	s.mu.Lock()
	s.docs[docKey(collection, id)] = b
	s.mu.Unlock()
}

func (s *fakeDocStore) read(t *testing.T, collection, id string, v any) {
	t.Helper()
	s.mu.Lock()
	b, ok := s.docs[docKey(collection, id)]
	s.mu.Unlock()
	require.True(t, ok, "no document at %q", docKey(collection, id))
	require.NoError(t, json.Unmarshal(b, v))
}

// sentNotification records one Notifier.Send call.
type sentNotification struct {
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []sentNotification
	err   error
}

func (n *fakeNotifier) Send(_ context.Context, topic, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sends = append(n.sends, sentNotification{Topic: topic, Title: title, Body: body, Data: data})
	return nil
}

type fakeFeed struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (f *fakeFeed) Publish(_ context.Context, path string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, path)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Fresh unregistered collectors to avoid "already registered" panics.
	return observability.NewMetricsForTesting()
}
