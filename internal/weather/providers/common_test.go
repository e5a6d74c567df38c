package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/marine-forecast/internal/weather"
)

func TestHTTPFetcherFetch(t *testing.T) {
	var gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), "marine-forecast-test/1.0")
	body, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
	assert.Equal(t, "marine-forecast-test/1.0", gotAgent)
	assert.Equal(t, "text/html", gotAccept)
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), "")
	_, err := fetcher.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var te *weather.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusForbidden, te.StatusCode)
	assert.Equal(t, srv.URL, te.URL)
}

func TestHTTPFetcherCircuitOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), "")
	for i := 0; i < 3; i++ {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	}

	_, err := fetcher.Fetch(context.Background(), srv.URL)
	var te *weather.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, int32(3), hits.Load(), "an open breaker must not reach the server")
}

func TestHTTPFetcherCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewHTTPFetcher(srv.Client(), "")
	_, err := fetcher.Fetch(ctx, srv.URL)
	var te *weather.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcherWithoutClient(t *testing.T) {
	fetcher := NewHTTPFetcher(nil, "")
	_, err := fetcher.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, errNoHTTPClient)
}
