package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trendlens/trendlens/internal/types"
)

// APIFetcher pulls trending lists from a running aggregation server.
type APIFetcher struct {
	baseURL string
	client  *http.Client
}

// NewAPIFetcher creates a fetcher against the given server base URL.
func NewAPIFetcher(baseURL string) *APIFetcher {
	return &APIFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HTTPClient exposes the underlying client for test transports.
func (f *APIFetcher) HTTPClient() *http.Client {
	return f.client
}

// Models implements Fetcher.
func (f *APIFetcher) Models(ctx context.Context, limit int) ([]types.ModelRecord, error) {
	var body struct {
		Models []types.ModelRecord `json:"models"`
		Error  string              `json:"error"`
	}
	if err := f.getJSON(ctx, f.limitURL("models", limit), &body, &body.Error); err != nil {
		return nil, err
	}

	return body.Models, nil
}

// Datasets implements Fetcher.
func (f *APIFetcher) Datasets(ctx context.Context, limit int) ([]types.DatasetRecord, error) {
	var body struct {
		Datasets []types.DatasetRecord `json:"datasets"`
		Error    string                `json:"error"`
	}
	if err := f.getJSON(ctx, f.limitURL("datasets", limit), &body, &body.Error); err != nil {
		return nil, err
	}

	return body.Datasets, nil
}

// Spaces implements Fetcher.
func (f *APIFetcher) Spaces(ctx context.Context, limit int) ([]types.SpaceRecord, error) {
	var spaces []types.SpaceRecord
	if err := f.getJSON(ctx, f.limitURL("spaces", limit), &spaces, nil); err != nil {
		return nil, err
	}

	return spaces, nil
}

// Papers implements Fetcher.
func (f *APIFetcher) Papers(ctx context.Context, tf types.TimeFrame) ([]types.PaperRecord, error) {
	target := fmt.Sprintf("%s/api/trending/papers?timeFrame=%s", f.baseURL, url.QueryEscape(string(tf)))

	var papers []types.PaperRecord
	if err := f.getJSON(ctx, target, &papers, nil); err != nil {
		return nil, err
	}

	return papers, nil
}

func (f *APIFetcher) limitURL(kind string, limit int) string {
	return fmt.Sprintf("%s/api/trending/%s?limit=%d", f.baseURL, kind, limit)
}

// getJSON performs one GET and decodes the body into v. Non-2xx responses
// are reported with the body's error message when one is present.
func (f *APIFetcher) getJSON(ctx context.Context, target string, v interface{}, errField *string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}

		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if errField != nil && *errField != "" {
		return fmt.Errorf("%s", *errField)
	}

	return nil
}
