package waitz

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otcampus/campus-feeds/internal/domain"
)

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(baseURL, 5*time.Second, logger)
}

func TestClient_Fetch(t *testing.T) {
	t.Run("wrapped response shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data": [{"id": 101, "name": "Hunt Library", "busyness": 62}]}`))
		}))
		defer srv.Close()

		locations, err := testClient(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, 101, locations[0].ID)
		assert.Equal(t, 62, locations[0].Busyness)
	})

	t.Run("top-level array shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`[{"id": 102, "name": "Talley"}]`))
		}))
		defer srv.Close()

		locations, err := testClient(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, 102, locations[0].ID)
	})

	t.Run("http error is an upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("unexpected shape is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`"nope"`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedUpstreamData)
	})
}
