package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/trendlens/internal/adapters"
	"github.com/trendlens/trendlens/internal/types"
)

func TestModels(t *testing.T) {
	raw := `{
		"content": {
			"recentlyTrending": [
				{
					"repoData": {
						"id": "meta-llama/Llama-3",
						"author": "meta-llama",
						"authorData": {"avatarUrl": "https://cdn.example/avatar.png"},
						"downloads": 120000,
						"likes": 4300,
						"lastModified": "2024-05-01T12:00:00.000Z",
						"pipeline_tag": "text-generation",
						"private": false,
						"gated": "manual"
					}
				},
				{},
				{
					"repoData": {
						"id": "openai/whisper",
						"author": "openai",
						"gated": false
					}
				}
			]
		}
	}`

	var env adapters.TrendingEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	records := Models(&env)
	require.Len(t, records, 2)

	assert.Equal(t, types.ModelRecord{
		ModelID:      "meta-llama/Llama-3",
		Author:       "meta-llama",
		AuthorAvatar: "https://cdn.example/avatar.png",
		Downloads:    120000,
		Likes:        4300,
		LastModified: "2024-05-01T12:00:00.000Z",
		PipelineTag:  "text-generation",
		IsPrivate:    false,
		IsGated:      true,
	}, records[0])

	assert.Equal(t, "openai/whisper", records[1].ModelID)
	assert.False(t, records[1].IsGated)
	assert.Empty(t, records[1].AuthorAvatar)
}

func TestModelsEmptyEnvelope(t *testing.T) {
	tests := []struct {
		name string
		env  *adapters.TrendingEnvelope
	}{
		{name: "nil envelope", env: nil},
		{name: "missing content", env: &adapters.TrendingEnvelope{}},
		{
			name: "missing list",
			env:  &adapters.TrendingEnvelope{Content: &adapters.TrendingContent{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Models(tt.env))
		})
	}
}

func TestDatasets(t *testing.T) {
	env := &adapters.TrendingEnvelope{
		Content: &adapters.TrendingContent{
			RecentlyTrending: []adapters.TrendingItem{
				{
					RepoData: &adapters.RepoData{
						ID:        "HuggingFaceFW/fineweb",
						Author:    "HuggingFaceFW",
						Downloads: 90000,
						Likes:     1800,
						Gated:     true,
						DatasetsServerInfo: &adapters.DatasetsServerInfo{
							NumRows:    15000000,
							Modalities: []string{"text"},
							Formats:    []string{"parquet"},
							Libraries:  []string{"datasets"},
						},
					},
				},
				{RepoData: nil},
				{RepoData: &adapters.RepoData{ID: "no-author"}},
				{RepoData: &adapters.RepoData{Author: "no-id"}},
			},
		},
	}

	records := Datasets(env)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "HuggingFaceFW/fineweb", got.ID)
	assert.Equal(t, "fineweb", got.FormattedTitle)
	assert.Equal(t, "HuggingFaceFW", got.Author)
	assert.True(t, got.Gated)
	require.NotNil(t, got.ServerInfo)
	assert.Equal(t, int64(15000000), got.ServerInfo.NumRows)
	assert.Equal(t, []string{"parquet"}, got.ServerInfo.Formats)
}

func TestSpaces(t *testing.T) {
	tests := []struct {
		name       string
		repo       *adapters.RepoData
		wantTitle  string
		wantDesc   string
		wantDomain string
	}{
		{
			name: "explicit title and description",
			repo: &adapters.RepoData{
				ID:                 "acme/cool-app",
				Author:             "acme",
				Title:              "Cool App",
				ShortDescription:   "hand written",
				AIShortDescription: "generated",
			},
			wantTitle: "Cool App",
			wantDesc:  "hand written",
		},
		{
			name: "title falls back to id segment",
			repo: &adapters.RepoData{
				ID:                 "acme/cool-app",
				Author:             "acme",
				AIShortDescription: "generated",
			},
			wantTitle: "cool-app",
			wantDesc:  "generated",
		},
		{
			name: "primary domain from runtime",
			repo: &adapters.RepoData{
				ID:     "acme/cool-app",
				Author: "acme",
				Runtime: &adapters.SpaceRuntime{
					Domains: []adapters.RuntimeDomain{
						{Domain: "acme-cool-app.hf.space"},
						{Domain: "second.hf.space"},
					},
				},
			},
			wantTitle:  "cool-app",
			wantDomain: "acme-cool-app.hf.space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &adapters.TrendingEnvelope{
				Content: &adapters.TrendingContent{
					RecentlyTrending: []adapters.TrendingItem{{RepoData: tt.repo}},
				},
			}

			records := Spaces(env)
			require.Len(t, records, 1)
			assert.Equal(t, tt.wantTitle, records[0].Title)
			assert.Equal(t, tt.wantDesc, records[0].Description)
			assert.Equal(t, tt.wantDomain, records[0].PrimaryDomain)
		})
	}
}

func TestPapers(t *testing.T) {
	items := []adapters.DailyPaperItem{
		{
			Paper: &adapters.DailyPaper{
				ID:      "2405.12345",
				Title:   "Scaling Laws Revisited",
				Upvotes: 87,
			},
			Thumbnail:   "https://cdn.example/thumb.png",
			NumComments: 12,
			SubmittedBy: &adapters.PaperSubmitter{Fullname: "Ada Lovelace"},
		},
		{
			Paper: &adapters.DailyPaper{ID: "2405.99999", Title: "No Extras"},
		},
		{Paper: nil},
	}

	records := Papers(items)
	require.Len(t, records, 2)

	assert.Equal(t, types.PaperRecord{
		Title:       "Scaling Laws Revisited",
		Image:       "https://cdn.example/thumb.png",
		Link:        "https://huggingface.co/papers/2405.12345",
		Upvotes:     87,
		Comments:    12,
		SubmittedBy: "Ada Lovelace",
	}, records[0])

	assert.Equal(t, "/placeholder.jpg", records[1].Image)
	assert.Equal(t, "Unknown", records[1].SubmittedBy)
}

func TestAfterSlash(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"acme/cool-app", "cool-app"},
		{"cool-app", "cool-app"},
		{"a/b/c", "b/c"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, afterSlash(tt.input))
	}
}
