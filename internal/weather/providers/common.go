package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/marine-forecast/internal/weather"
)

// maxPageBytes bounds how much of a forecast page is read into memory.
const maxPageBytes = 8 << 20

// HTTPClientConfig bundles the HTTP client and request settings.
type HTTPClientConfig struct {
	Client    *http.Client
	UserAgent string
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// HTTPFetcher fetches pages over HTTP behind a circuit breaker. It never
// retries: a failed fetch is reported and the caller waits for its next run.
type HTTPFetcher struct {
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPFetcher creates a fetcher sharing client for all requests.
func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "forecast-page",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &HTTPFetcher{
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: cb,
	}
}

// Fetch returns the body of url as text. Network failures, non-2xx statuses
// and an open breaker are all reported as *weather.TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.httpCfg.Client == nil {
		return "", &weather.TransportError{URL: url, Err: errNoHTTPClient}
	}

	result, err := f.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if f.httpCfg.UserAgent != "" {
			req.Header.Set("User-Agent", f.httpCfg.UserAgent)
		}
		req.Header.Set("Accept", "text/html")

		resp, err := f.httpCfg.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &weather.TransportError{URL: url, StatusCode: resp.StatusCode}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return string(body), nil
	})

	if err != nil {
		var te *weather.TransportError
		if errors.As(err, &te) {
			return "", te
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &weather.TransportError{URL: url, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		}
		return "", &weather.TransportError{URL: url, Err: err}
	}

	body, ok := result.(string)
	if !ok {
		return "", &weather.TransportError{URL: url, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return body, nil
}
