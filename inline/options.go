package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type ItemsFilter func([]*content.Item) []*content.Item

type Options struct {
	Out       io.Writer
	Catalog   intersect.Catalog
	Resolver  intersect.Resolver
	Cache     *cache.Cache
	Countries []string
	Services  []string
	Kind      content.Kind
	// Batches is the number of batches to fetch, at least one.
	Batches     int
	Json        bool
	Description bool
	Filter      mo.Option[ItemsFilter]
}

// ParseFilter parses an item selector:
//
//	genre:<name>  items tagged with the genre
//	first:<n>     the first n items
//	@<text>@      items whose title contains text
func ParseFilter(description string) (ItemsFilter, error) {
	switch {
	case strings.HasPrefix(description, "genre:"):
		genre := strings.TrimPrefix(description, "genre:")
		return func(items []*content.Item) []*content.Item {
			return lo.Filter(items, func(i *content.Item, _ int) bool {
				return lo.ContainsBy(i.Genres, func(g string) bool { return strings.EqualFold(g, genre) })
			})
		}, nil
	case strings.HasPrefix(description, "first:"):
		n, err := strconv.ParseUint(strings.TrimPrefix(description, "first:"), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid count: %s", description)
		}
		return func(items []*content.Item) []*content.Item {
			return lo.Slice(items, 0, int(n))
		}, nil
	case len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@"):
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(items []*content.Item) []*content.Item {
			return lo.Filter(items, func(i *content.Item, _ int) bool {
				return strings.Contains(strings.ToLower(i.Title), sub)
			})
		}, nil
	default:
		return nil, fmt.Errorf("invalid filter: %s", description)
	}
}
