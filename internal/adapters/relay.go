package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/resilience"
)

// RelayClient reaches the upstream platform through the relay forwarder,
// which fetches an arbitrary URL and returns its JSON body verbatim:
// GET <relay>?isapi=1&url=<url-encoded target>.
type RelayClient struct {
	baseURL string
	pool    *resilience.PooledClient
	retry   resilience.RetryConfig
}

// statusError carries a non-2xx relay response through the retry loop so
// retryability can be decided per status code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("relay returned status %d", e.code)
}

// NewRelayClient creates a relay client with pooling and a circuit breaker.
func NewRelayClient(baseURL string) *RelayClient {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 3,
	})

	retry := resilience.DefaultRetryConfig()
	retry.Retryable = func(err error) bool {
		if sErr, ok := err.(*statusError); ok {
			return resilience.IsRetryableHTTPStatus(sErr.code)
		}
		return errors.IsRetryableError(err)
	}

	return &RelayClient{
		baseURL: baseURL,
		pool:    resilience.NewPooledClient(resilience.DefaultPooledClientConfig(), cb),
		retry:   retry,
	}
}

// FetchJSON fetches target through the relay and decodes the body into v.
func (r *RelayClient) FetchJSON(ctx context.Context, target string, v interface{}) error {
	relayURL := fmt.Sprintf("%s?isapi=1&url=%s", r.baseURL, url.QueryEscape(target))

	var body []byte

	err := resilience.RetryWithConfig(ctx, r.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "TrendLens/1.0")

		resp, err := r.pool.Do(req)
		if err != nil {
			return errors.NewNetworkError("relay request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the pooled connection survives the retry.
			_, _ = io.Copy(io.Discard, resp.Body)
			return &statusError{code: resp.StatusCode}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		if sErr, ok := err.(*statusError); ok {
			return errors.NewHTTPStatusError(sErr.code, sErr.Error())
		}
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewUpstreamShapeError("relay returned a non-JSON body", err)
	}

	return nil
}

// HTTPClient exposes the pooled client for tests.
func (r *RelayClient) HTTPClient() *http.Client {
	return r.pool.HTTPClient()
}

// BreakerStats reports relay circuit breaker state for the health endpoint.
func (r *RelayClient) BreakerStats() map[string]interface{} {
	return r.pool.Breaker().Stats()
}

// Close releases pooled connections.
func (r *RelayClient) Close() error {
	return r.pool.Close()
}
