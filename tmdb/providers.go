package tmdb

import (
	"context"
	"fmt"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/samber/lo"
)

// FetchProviders returns, for each requested country, the provider ids the title streams on.
// Countries without any listing map to an empty slice.
func (c *Client) FetchProviders(ctx context.Context, sourceID int, kind content.Kind, countries []string) (map[string][]int, error) {
	var resp watchProvidersResponse
	path := fmt.Sprintf("/%s/%d/watch/providers", kind.Path(), sourceID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	out := make(map[string][]int, len(countries))
	for _, country := range countries {
		listing, ok := resp.Results[country]
		if !ok {
			out[country] = []int{}
			continue
		}

		streams := append(append([]watchProvider{}, listing.Flatrate...), listing.Ads...)
		out[country] = lo.Uniq(lo.Map(streams, func(p watchProvider, _ int) int { return p.ProviderID }))
	}
	return out, nil
}
