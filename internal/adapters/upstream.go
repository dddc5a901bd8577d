package adapters

import (
	"bytes"
	"encoding/json"
)

// TrendingEnvelope is the wrapper returned by the upstream trending query:
// {content:{recentlyTrending:[{repoData:{...}}]}}. Every nesting level is
// optional; normalization treats a missing level as an empty feed.
type TrendingEnvelope struct {
	Content *TrendingContent `json:"content"`
}

// TrendingContent holds the ranked item list inside the envelope.
type TrendingContent struct {
	RecentlyTrending []TrendingItem `json:"recentlyTrending"`
}

// TrendingItem wraps one ranked repository. Items without repoData have been
// observed in the wild and must be skipped, not dereferenced.
type TrendingItem struct {
	RepoData *RepoData `json:"repoData"`
}

// AuthorData carries the author's profile details.
type AuthorData struct {
	AvatarURL string `json:"avatarUrl"`
}

// RuntimeDomain is one entry of a space's runtime domain list.
type RuntimeDomain struct {
	Domain string `json:"domain"`
}

// SpaceRuntime is the runtime block attached to space repos.
type SpaceRuntime struct {
	Domains []RuntimeDomain `json:"domains"`
}

// DatasetsServerInfo is the dataset-server metadata block on dataset repos.
type DatasetsServerInfo struct {
	NumRows    int64    `json:"numRows"`
	Modalities []string `json:"modalities"`
	Formats    []string `json:"formats"`
	Libraries  []string `json:"libraries"`
}

// RepoData is the union of the raw fields the upstream attaches to trending
// models, datasets and spaces. Fields not present for a given content type
// are simply zero.
type RepoData struct {
	ID                 string              `json:"id"`
	Author             string              `json:"author"`
	AuthorData         *AuthorData         `json:"authorData"`
	Downloads          int64               `json:"downloads"`
	Likes              int64               `json:"likes"`
	LastModified       string              `json:"lastModified"`
	PipelineTag        string              `json:"pipeline_tag"`
	Private            bool                `json:"private"`
	Gated              GatedFlag           `json:"gated"`
	Title              string              `json:"title"`
	ShortDescription   string              `json:"shortDescription"`
	AIShortDescription string              `json:"ai_short_description"`
	Emoji              string              `json:"emoji"`
	Runtime            *SpaceRuntime       `json:"runtime"`
	DatasetsServerInfo *DatasetsServerInfo `json:"datasetsServerInfo"`
}

// GatedFlag handles the upstream's gated field, which is either a boolean or
// a gating-mode string ("auto", "manual"). Any value other than false/null
// means the repo is gated.
type GatedFlag bool

// UnmarshalJSON implements json.Unmarshaler.
func (g *GatedFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*g = false
		return nil
	case bytes.Equal(data, []byte("true")):
		*g = true
		return nil
	}

	var mode string
	if err := json.Unmarshal(data, &mode); err != nil {
		// Unknown shape; treat as ungated rather than failing the whole feed.
		*g = false
		return nil
	}

	*g = mode != ""
	return nil
}

// DailyPaperItem is one entry of the upstream daily-papers feed.
type DailyPaperItem struct {
	Paper       *DailyPaper     `json:"paper"`
	Thumbnail   string          `json:"thumbnail"`
	NumComments int64           `json:"numComments"`
	SubmittedBy *PaperSubmitter `json:"submittedBy"`
	PublishedAt string          `json:"publishedAt"`
}

// DailyPaper is the paper block inside a daily-papers entry.
type DailyPaper struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Upvotes     int64  `json:"upvotes"`
	PublishedAt string `json:"publishedAt"`
}

// PaperSubmitter identifies who surfaced the paper to the community.
type PaperSubmitter struct {
	Fullname string `json:"fullname"`
}
