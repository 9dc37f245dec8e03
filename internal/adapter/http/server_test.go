package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/otcampus/campus-feeds/internal/adapter/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrigger struct {
	known   map[string]bool
	invoked []string
}

func (s *stubTrigger) Invoke(_ context.Context, domain string) bool {
	s.invoked = append(s.invoked, domain)
	return s.known[domain]
}

type stubReadiness struct {
	err error
}

func (s *stubReadiness) CheckReadiness(context.Context) error { return s.err }

func newTestServer(trigger *stubTrigger, ready *stubReadiness) *httpadapter.Server {
	return httpadapter.NewServer(":0", trigger, ready, slog.Default())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Trigger(t *testing.T) {
	t.Run("known domain is accepted", func(t *testing.T) {
		trigger := &stubTrigger{known: map[string]bool{"weather": true}}
		srv := newTestServer(trigger, &stubReadiness{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/weather", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "accepted", decodeBody(t, rec)["status"])
		assert.Equal(t, []string{"weather"}, trigger.invoked)
	})

	t.Run("unknown domain is 404", func(t *testing.T) {
		trigger := &stubTrigger{known: map[string]bool{}}
		srv := newTestServer(trigger, &stubReadiness{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/minesweeper", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "minesweeper", decodeBody(t, rec)["domain"])
	})

	t.Run("GET on the trigger route is rejected", func(t *testing.T) {
		trigger := &stubTrigger{known: map[string]bool{"weather": true}}
		srv := newTestServer(trigger, &stubReadiness{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/weather", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Empty(t, trigger.invoked)
	})
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(&stubTrigger{}, &stubReadiness{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestServer_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&stubTrigger{}, &stubReadiness{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&stubTrigger{}, &stubReadiness{err: errors.New("no pass completed")})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "no pass completed", decodeBody(t, rec)["error"])
	})
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(&stubTrigger{}, &stubReadiness{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
