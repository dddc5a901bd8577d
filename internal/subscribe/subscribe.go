// Package subscribe forwards newsletter signups to the external subscription
// collaborator.
package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/resilience"
)

// Client posts signups to the collaborator endpoint. The collaborator
// contract is success/failure only; no response body is interpreted.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a subscription client. An empty endpoint disables
// signups; Subscribe then reports a subscription failure.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// HTTPClient exposes the underlying client for tests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Subscribe validates email and forwards it to the collaborator.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	if !strings.Contains(email, "@") {
		return errors.NewValidationError("please enter a valid email address")
	}
	if c.endpoint == "" {
		return errors.NewSubscriptionError("subscription service not configured", nil)
	}

	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return errors.NewInternalError("failed to encode subscription payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.NewInternalError("failed to build subscription request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewSubscriptionError("subscription request failed", err)
	}
	defer resilience.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewSubscriptionError(
			fmt.Sprintf("subscription rejected with status %d", resp.StatusCode), nil)
	}

	return nil
}
