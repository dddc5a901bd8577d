package adapters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatedFlagUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "false", input: `false`, expected: false},
		{name: "true", input: `true`, expected: true},
		{name: "null", input: `null`, expected: false},
		{name: "auto mode", input: `"auto"`, expected: true},
		{name: "manual mode", input: `"manual"`, expected: true},
		{name: "empty string", input: `""`, expected: false},
		{name: "unknown shape", input: `{"weird":1}`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag GatedFlag
			require.NoError(t, json.Unmarshal([]byte(tt.input), &flag))
			assert.Equal(t, tt.expected, bool(flag))
		})
	}
}

func TestRepoDataUnmarshal(t *testing.T) {
	raw := `{
		"id": "acme/cool-app",
		"author": "acme",
		"authorData": {"avatarUrl": "https://cdn.example/a.png"},
		"pipeline_tag": "text-generation",
		"ai_short_description": "generated blurb",
		"gated": "auto",
		"runtime": {"domains": [{"domain": "acme-cool-app.hf.space"}]}
	}`

	var repo RepoData
	require.NoError(t, json.Unmarshal([]byte(raw), &repo))

	assert.Equal(t, "acme/cool-app", repo.ID)
	assert.Equal(t, "https://cdn.example/a.png", repo.AuthorData.AvatarURL)
	assert.Equal(t, "text-generation", repo.PipelineTag)
	assert.Equal(t, "generated blurb", repo.AIShortDescription)
	assert.True(t, bool(repo.Gated))
	require.Len(t, repo.Runtime.Domains, 1)
	assert.Equal(t, "acme-cool-app.hf.space", repo.Runtime.Domains[0].Domain)
}
