// Package availability answers where a title streams, in terms of the canonical service vocabulary.
package availability

import (
	"context"
	"fmt"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/samber/lo"
)

// ProviderLookup is the per-title provider listing of the catalog.
type ProviderLookup interface {
	FetchProviders(ctx context.Context, sourceID int, kind content.Kind, countries []string) (map[string][]int, error)
}

// Availability maps a country code to the canonical service ids a title streams on there.
type Availability map[string][]string

// Covered returns the selected services the title streams on in country, in selection order.
func (a Availability) Covered(country string, services []string) []string {
	on := a[country]
	return lo.Filter(services, func(s string, _ int) bool { return lo.Contains(on, s) })
}

// CoversAll reports whether every country has at least one selected service.
// The returned map holds the covered services per country and is only complete when ok is true.
func (a Availability) CoversAll(countries, services []string) (covered map[string][]string, ok bool) {
	if len(countries) == 0 {
		return nil, false
	}

	covered = make(map[string][]string, len(countries))
	for _, country := range countries {
		on := a.Covered(country, services)
		if len(on) == 0 {
			return covered, false
		}
		covered[country] = on
	}
	return covered, true
}

// Available reports whether the title streams on at least one selected service in country.
func (a Availability) Available(country string, services []string) bool {
	return len(a.Covered(country, services)) > 0
}

// Resolver turns raw provider listings into Availability.
type Resolver struct {
	lookup ProviderLookup
}

func NewResolver(lookup ProviderLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve looks the title up once for all countries. Every requested country is present
// in the result, mapped to an empty list when nothing known streams there.
func (r *Resolver) Resolve(ctx context.Context, sourceID int, kind content.Kind, countries []string) (Availability, error) {
	raw, err := r.lookup.FetchProviders(ctx, sourceID, kind, countries)
	if err != nil {
		return nil, fmt.Errorf("resolve providers of %s %d: %w", kind, sourceID, err)
	}

	out := make(Availability, len(countries))
	for _, country := range countries {
		out[country] = region.Canonicalize(raw[country])
	}
	return out, nil
}
