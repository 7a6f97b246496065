// Package recent remembers country and service selections, ranked by how often they were searched.
package recent

import (
	"strings"
	"sync"
	"time"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Selection is a remembered search.
type Selection struct {
	Countries []string  `json:"countries"`
	Services  []string  `json:"services"`
	Rank      int       `json:"rank"`
	LastUsed  time.Time `json:"lastUsed"`
}

// String renders the selection the way it is typed on the command line.
func (s *Selection) String() string {
	return strings.Join(s.Countries, ",") + " " + strings.Join(s.Services, ",")
}

var (
	cacher     *gache.Cache[map[string]*Selection]
	cacherOnce sync.Once
	now        = time.Now
)

func store() *gache.Cache[map[string]*Selection] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*Selection](&gache.Options{
			Path:       where.Recent(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

func load() map[string]*Selection {
	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*Selection)
	}
	return cached
}

// Remember records a searched selection or bumps its rank.
func Remember(countries, services []string) error {
	if !viper.GetBool(key.SearchRemember) || len(countries) == 0 || len(services) == 0 {
		return nil
	}

	records := load()
	k := cache.Key(countries, services)
	if record, ok := records[k]; ok {
		record.Rank++
		record.Countries = countries
		record.Services = services
		record.LastUsed = now()
	} else {
		records[k] = &Selection{
			Countries: countries,
			Services:  services,
			Rank:      1,
			LastUsed:  now(),
		}
	}

	return store().Set(records)
}

// Last returns the most recently searched selection.
func Last() mo.Option[*Selection] {
	records := lo.Values(load())
	if len(records) == 0 {
		return mo.None[*Selection]()
	}

	return mo.Some(lo.MaxBy(records, func(a, b *Selection) bool {
		return a.LastUsed.After(b.LastUsed)
	}))
}

// SuggestMany returns remembered selections fuzzily matching q, most used first.
func SuggestMany(q string) []*Selection {
	if !viper.GetBool(key.SearchShowSuggestions) {
		return nil
	}

	q = strings.ToLower(strings.TrimSpace(q))
	matches := lo.Filter(lo.Values(load()), func(s *Selection, _ int) bool {
		return fuzzy.MatchFold(q, s.String())
	})

	slices.SortFunc(matches, func(a, b *Selection) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return b.LastUsed.Compare(a.LastUsed)
	})
	return matches
}

// Suggest returns the best remembered selection for q.
func Suggest(q string) mo.Option[*Selection] {
	if matches := SuggestMany(q); len(matches) > 0 {
		return mo.Some(matches[0])
	}
	return mo.None[*Selection]()
}
