package adapters

import (
	"context"
	"fmt"

	"github.com/trendlens/trendlens/internal/errors"
)

// TrendingType is the upstream's name for a content type in the trending
// query. Note it is singular, unlike the endpoint paths.
type TrendingType string

const (
	TypeModel   TrendingType = "model"
	TypeDataset TrendingType = "dataset"
	TypeSpace   TrendingType = "space"
)

// TrendingAdapter fetches the trending feed for one content type from the
// upstream platform, going through the relay.
type TrendingAdapter struct {
	relay *RelayClient
	host  string
}

// NewTrendingAdapter creates a trending adapter for the given upstream host.
func NewTrendingAdapter(relay *RelayClient, host string) *TrendingAdapter {
	return &TrendingAdapter{relay: relay, host: host}
}

// FetchTrending fetches the raw trending envelope for typ, limited to limit
// items. The envelope is returned as-is; normalization happens at the
// endpoint boundary.
func (t *TrendingAdapter) FetchTrending(ctx context.Context, typ TrendingType, limit int) (*TrendingEnvelope, error) {
	target := fmt.Sprintf("%s/api/trending?limit=%d&type=%s", t.host, limit, typ)

	var env TrendingEnvelope
	if err := t.relay.FetchJSON(ctx, target, &env); err != nil {
		return nil, errors.WrapError(err, "failed to fetch trending %s", typ)
	}

	return &env, nil
}
