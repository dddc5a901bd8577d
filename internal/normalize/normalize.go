// Package normalize contains the pure transforms from raw upstream envelopes
// to the stable internal record shapes. Adapters here never fail: a missing
// envelope level yields an empty list and malformed entries are skipped.
package normalize

import (
	"strings"

	"github.com/trendlens/trendlens/internal/adapters"
	"github.com/trendlens/trendlens/internal/types"
)

// paperURLPrefix builds the community paper page link from a paper id. The
// trailing path segment doubles as the arxiv identifier.
const paperURLPrefix = "https://huggingface.co/papers/"

// placeholderImage substitutes for papers without a thumbnail.
const placeholderImage = "/placeholder.jpg"

// Models flattens the trending envelope into model records. Entries without
// repoData are dropped.
func Models(env *adapters.TrendingEnvelope) []types.ModelRecord {
	items := envelopeItems(env)

	records := make([]types.ModelRecord, 0, len(items))
	for _, item := range items {
		repo := item.RepoData
		if repo == nil {
			continue
		}

		record := types.ModelRecord{
			ModelID:      repo.ID,
			Author:       repo.Author,
			Downloads:    repo.Downloads,
			Likes:        repo.Likes,
			LastModified: repo.LastModified,
			PipelineTag:  repo.PipelineTag,
			IsPrivate:    repo.Private,
			IsGated:      bool(repo.Gated),
		}
		if repo.AuthorData != nil {
			record.AuthorAvatar = repo.AuthorData.AvatarURL
		}

		records = append(records, record)
	}

	return records
}

// Datasets flattens the trending envelope into dataset records. Entries
// missing repoData, an id or an author are dropped.
func Datasets(env *adapters.TrendingEnvelope) []types.DatasetRecord {
	items := envelopeItems(env)

	records := make([]types.DatasetRecord, 0, len(items))
	for _, item := range items {
		repo := item.RepoData
		if repo == nil || repo.ID == "" || repo.Author == "" {
			continue
		}

		record := types.DatasetRecord{
			ID:             repo.ID,
			FormattedTitle: afterSlash(repo.ID),
			Author:         repo.Author,
			Downloads:      repo.Downloads,
			Likes:          repo.Likes,
			LastModified:   repo.LastModified,
			Gated:          bool(repo.Gated),
		}
		if info := repo.DatasetsServerInfo; info != nil {
			record.ServerInfo = &types.DatasetServerInfo{
				NumRows:    info.NumRows,
				Modalities: info.Modalities,
				Formats:    info.Formats,
				Libraries:  info.Libraries,
			}
		}

		records = append(records, record)
	}

	return records
}

// Spaces flattens the trending envelope into space records. Entries without
// repoData are dropped.
func Spaces(env *adapters.TrendingEnvelope) []types.SpaceRecord {
	items := envelopeItems(env)

	records := make([]types.SpaceRecord, 0, len(items))
	for _, item := range items {
		repo := item.RepoData
		if repo == nil {
			continue
		}

		title := repo.Title
		if title == "" {
			title = afterSlash(repo.ID)
		}

		description := repo.ShortDescription
		if description == "" {
			description = repo.AIShortDescription
		}

		record := types.SpaceRecord{
			ID:           repo.ID,
			Title:        title,
			Author:       repo.Author,
			Description:  description,
			Emoji:        repo.Emoji,
			Likes:        repo.Likes,
			LastModified: repo.LastModified,
		}
		if repo.AuthorData != nil {
			record.AuthorAvatar = repo.AuthorData.AvatarURL
		}
		if repo.Runtime != nil && len(repo.Runtime.Domains) > 0 {
			record.PrimaryDomain = repo.Runtime.Domains[0].Domain
		}

		records = append(records, record)
	}

	return records
}

// Papers converts daily-papers entries into paper records. Entries without a
// paper block are dropped.
func Papers(items []adapters.DailyPaperItem) []types.PaperRecord {
	records := make([]types.PaperRecord, 0, len(items))
	for _, item := range items {
		paper := item.Paper
		if paper == nil {
			continue
		}

		image := item.Thumbnail
		if image == "" {
			image = placeholderImage
		}

		submittedBy := ""
		if item.SubmittedBy != nil {
			submittedBy = item.SubmittedBy.Fullname
		}
		if submittedBy == "" {
			submittedBy = "Unknown"
		}

		records = append(records, types.PaperRecord{
			Title:       paper.Title,
			Image:       image,
			Link:        paperURLPrefix + paper.ID,
			Upvotes:     paper.Upvotes,
			Comments:    item.NumComments,
			SubmittedBy: submittedBy,
		})
	}

	return records
}

// envelopeItems extracts recentlyTrending with guarded access; any missing
// level resolves to an empty slice.
func envelopeItems(env *adapters.TrendingEnvelope) []adapters.TrendingItem {
	if env == nil || env.Content == nil {
		return nil
	}
	return env.Content.RecentlyTrending
}

// afterSlash returns the segment after the first "/" if one is present,
// otherwise the input unchanged.
func afterSlash(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
