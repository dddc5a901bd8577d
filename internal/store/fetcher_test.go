package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/trendlens/internal/types"
)

func newMockedFetcher(t *testing.T) *APIFetcher {
	t.Helper()

	fetcher := NewAPIFetcher("http://server.test")
	httpmock.ActivateNonDefault(fetcher.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	return fetcher
}

func TestAPIFetcherModels(t *testing.T) {
	fetcher := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "http://server.test/api/trending/models",
		httpmock.NewStringResponder(200, `{"models":[{"modelId":"meta-llama/Llama-3"}]}`))

	models, err := fetcher.Models(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "meta-llama/Llama-3", models[0].ModelID)
}

func TestAPIFetcherSpacesBareArray(t *testing.T) {
	fetcher := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "http://server.test/api/trending/spaces",
		httpmock.NewStringResponder(200, `[{"id":"acme/cool-app","title":"cool-app"}]`))

	spaces, err := fetcher.Spaces(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, "cool-app", spaces[0].Title)
}

func TestAPIFetcherPapersQuery(t *testing.T) {
	fetcher := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "http://server.test/api/trending/papers",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "week", req.URL.Query().Get("timeFrame"))
			return httpmock.NewStringResponse(200, `[{"title":"Scaling Laws Revisited"}]`), nil
		})

	papers, err := fetcher.Papers(context.Background(), types.TimeFrameWeek)

	require.NoError(t, err)
	require.Len(t, papers, 1)
}

func TestAPIFetcherSurfacesErrorBody(t *testing.T) {
	fetcher := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "http://server.test/api/trending/models",
		httpmock.NewStringResponder(500, `{"error":"Failed to fetch models"}`))

	_, err := fetcher.Models(context.Background(), 10)

	require.Error(t, err)
	assert.Equal(t, "Failed to fetch models", err.Error())
}
