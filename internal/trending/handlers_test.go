package trending

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/trendlens/internal/adapters"
	"github.com/trendlens/trendlens/internal/monitoring"
)

const relayBase = "https://relay.test/fetch-url"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	relay := adapters.NewRelayClient(relayBase)
	httpmock.ActivateNonDefault(relay.HTTPClient())
	t.Cleanup(func() {
		httpmock.DeactivateAndReset()
		relay.Close()
	})

	handler := NewHandler(
		adapters.NewTrendingAdapter(relay, "https://huggingface.co"),
		adapters.NewPapersAdapter(relay, "https://huggingface.co"),
		monitoring.NewMetrics(),
		monitoring.NewLogger(),
	)

	r := gin.New()
	handler.RegisterRoutes(r)

	return r
}

func doRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	return w
}

func TestModelsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	httpmock.RegisterResponder("GET", relayBase,
		httpmock.NewStringResponder(200, `{
			"content": {"recentlyTrending": [
				{"repoData": {"id": "meta-llama/Llama-3", "author": "meta-llama", "gated": "manual"}},
				{}
			]}
		}`))

	w := doRequest(r, "/api/trending/models")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CacheControl, w.Header().Get("Cache-Control"))

	var body struct {
		Models []map[string]interface{} `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Models, 1)
	assert.Equal(t, "meta-llama/Llama-3", body.Models[0]["modelId"])
	assert.Equal(t, true, body.Models[0]["isGated"])
}

func TestDatasetsEndpointFlattens(t *testing.T) {
	r := newTestRouter(t)

	httpmock.RegisterResponder("GET", relayBase,
		httpmock.NewStringResponder(200, `{
			"content": {"recentlyTrending": [
				{"repoData": {"id": "HuggingFaceFW/fineweb", "author": "HuggingFaceFW"}}
			]}
		}`))

	w := doRequest(r, "/api/trending/datasets")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Datasets []map[string]interface{} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Datasets, 1)
	assert.Equal(t, "fineweb", body.Datasets[0]["formattedTitle"])
	// Flattened records, no envelope nesting
	assert.NotContains(t, w.Body.String(), "recentlyTrending")
}

func TestSpacesEndpointBareArray(t *testing.T) {
	r := newTestRouter(t)

	httpmock.RegisterResponder("GET", relayBase,
		httpmock.NewStringResponder(200, `{
			"content": {"recentlyTrending": [
				{"repoData": {"id": "acme/cool-app", "author": "acme", "emoji": "🚀"}}
			]}
		}`))

	w := doRequest(r, "/api/trending/spaces")

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "cool-app", body[0]["title"])
}

func TestEndpointFailureShape(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "models", path: "/api/trending/models", wantMsg: "Failed to fetch models"},
		{name: "datasets", path: "/api/trending/datasets", wantMsg: "Failed to fetch datasets"},
		{name: "spaces", path: "/api/trending/spaces", wantMsg: "Failed to fetch spaces"},
		{name: "papers", path: "/api/trending/papers", wantMsg: "Failed to fetch papers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t)

			httpmock.RegisterResponder("GET", relayBase,
				httpmock.NewStringResponder(404, "not found"))

			w := doRequest(r, tt.path)

			require.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestPapersRejectsUnknownTimeFrame(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, "/api/trending/papers?timeFrame=fortnight")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid timeFrame", body["error"])

	// No upstream call happens for a rejected time frame.
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{name: "default", query: "", expected: 10},
		{name: "explicit", query: "?limit=25", expected: 25},
		{name: "capped", query: "?limit=5000", expected: 100},
		{name: "garbage", query: "?limit=ten", expected: 10},
		{name: "negative", query: "?limit=-3", expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/trending/models"+tt.query, nil)

			assert.Equal(t, tt.expected, parseLimit(c))
		})
	}
}
