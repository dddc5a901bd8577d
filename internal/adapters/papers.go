package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/types"
)

// papersFetchLimit is how many daily-papers entries are pulled before the
// time-frame window is applied.
const papersFetchLimit = 50

// PapersAdapter fetches the community daily-papers feed and narrows it to
// the requested ranking window.
type PapersAdapter struct {
	relay *RelayClient
	host  string
	now   func() time.Time
}

// NewPapersAdapter creates a papers adapter for the given upstream host.
func NewPapersAdapter(relay *RelayClient, host string) *PapersAdapter {
	return &PapersAdapter{relay: relay, host: host, now: time.Now}
}

// FetchPapers fetches the daily-papers feed and keeps the entries published
// within the given time frame. Upstream order is preserved.
func (p *PapersAdapter) FetchPapers(ctx context.Context, tf types.TimeFrame) ([]DailyPaperItem, error) {
	target := fmt.Sprintf("%s/api/daily_papers?limit=%d", p.host, papersFetchLimit)

	var items []DailyPaperItem
	if err := p.relay.FetchJSON(ctx, target, &items); err != nil {
		return nil, errors.WrapError(err, "failed to fetch papers")
	}

	cutoff := p.now().Add(-windowFor(tf))

	kept := make([]DailyPaperItem, 0, len(items))
	for _, item := range items {
		at, ok := publishedAt(item)
		if ok && at.Before(cutoff) {
			continue
		}
		// Entries without a parseable timestamp stay in the feed.
		kept = append(kept, item)
	}

	return kept, nil
}

// windowFor maps a time frame to its lookback duration.
func windowFor(tf types.TimeFrame) time.Duration {
	switch tf {
	case types.TimeFrameThreeDays:
		return 3 * 24 * time.Hour
	case types.TimeFrameWeek:
		return 7 * 24 * time.Hour
	case types.TimeFrameMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// publishedAt resolves the publication timestamp of an entry, preferring the
// entry-level field over the nested paper block.
func publishedAt(item DailyPaperItem) (time.Time, bool) {
	raw := item.PublishedAt
	if raw == "" && item.Paper != nil {
		raw = item.Paper.PublishedAt
	}
	if raw == "" {
		return time.Time{}, false
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}

	return at, true
}
