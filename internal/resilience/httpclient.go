package resilience

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// PooledClient is an HTTP client with a bounded connection pool and a circuit
// breaker in front of it. One instance is shared per external service.
type PooledClient struct {
	client  *http.Client
	breaker *CircuitBreaker
}

// PooledClientConfig configures the transport limits for a PooledClient.
type PooledClientConfig struct {
	MaxIdleConns    int
	MaxConnsPerHost int
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
}

// DefaultPooledClientConfig returns the transport limits used for the relay.
func DefaultPooledClientConfig() PooledClientConfig {
	return PooledClientConfig{
		MaxIdleConns:    10,
		MaxConnsPerHost: 20,
		IdleTimeout:     30 * time.Second,
		RequestTimeout:  30 * time.Second,
	}
}

// NewPooledClient creates a pooled HTTP client guarded by the given breaker.
func NewPooledClient(config PooledClientConfig, cb *CircuitBreaker) *PooledClient {
	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		MaxIdleConnsPerHost:   config.MaxIdleConns / 2,
		IdleConnTimeout:       config.IdleTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &PooledClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
		breaker: cb,
	}
}

// Do executes req with circuit breaker protection.
func (pc *PooledClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	err := pc.breaker.Call(func() error {
		start := time.Now()

		var err error
		resp, err = pc.client.Do(req)
		duration := time.Since(start)

		if err != nil {
			slog.Warn("Request failed", "url", req.URL.Redacted(), "error", err, "duration_ms", duration.Milliseconds())
			return err
		}

		slog.Debug("Request completed", "url", req.URL.Redacted(), "status", resp.StatusCode, "duration_ms", duration.Milliseconds())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Breaker returns the client's circuit breaker for health reporting.
func (pc *PooledClient) Breaker() *CircuitBreaker {
	return pc.breaker
}

// HTTPClient exposes the underlying client so tests can install a mock
// transport on it.
func (pc *PooledClient) HTTPClient() *http.Client {
	return pc.client
}

// Close releases idle connections held by the transport.
func (pc *PooledClient) Close() error {
	if transport, ok := pc.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	return nil
}

// DrainAndClose consumes the remainder of an HTTP response body so the
// underlying connection can be reused, then closes it.
func DrainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
