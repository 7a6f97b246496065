// Package region defines the country and streaming service vocabulary and maps catalog provider ids onto it.
package region

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// MaxCountries is the largest selection the search supports.
const MaxCountries = 2

// Country is a selectable catalog region.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Service is a streaming service in the canonical vocabulary.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProviderIDs []int  `json:"providerIds"`
}

// Countries in display order.
var Countries = []Country{
	{Code: "KR", Name: "South Korea", Flag: "🇰🇷"},
	{Code: "US", Name: "USA", Flag: "🇺🇸"},
	{Code: "JP", Name: "Japan", Flag: "🇯🇵"},
	{Code: "GB", Name: "UK", Flag: "🇬🇧"},
	{Code: "FR", Name: "France", Flag: "🇫🇷"},
	{Code: "DE", Name: "Germany", Flag: "🇩🇪"},
	{Code: "CA", Name: "Canada", Flag: "🇨🇦"},
	{Code: "AU", Name: "Australia", Flag: "🇦🇺"},
}

// Services in display order. The order is also the order of canonicalized service lists.
var Services = []Service{
	{ID: "netflix", Name: "Netflix", ProviderIDs: []int{8}},
	{ID: "disney", Name: "Disney+", ProviderIDs: []int{337}},
	{ID: "prime", Name: "Prime Video", ProviderIDs: []int{9, 119}},
	{ID: "apple", Name: "Apple TV+", ProviderIDs: []int{350}},
	{ID: "hulu", Name: "Hulu", ProviderIDs: []int{15}},
}

var byProvider = func() map[int]string {
	m := make(map[int]string)
	for _, s := range Services {
		for _, id := range s.ProviderIDs {
			m[id] = s.ID
		}
	}
	return m
}()

// CountryCodes returns every country code in display order.
func CountryCodes() []string {
	return lo.Map(Countries, func(c Country, _ int) string { return c.Code })
}

// ServiceIDs returns every service id in display order.
func ServiceIDs() []string {
	return lo.Map(Services, func(s Service, _ int) string { return s.ID })
}

// LookupCountry finds a country by code, ignoring case.
func LookupCountry(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return lo.Find(Countries, func(c Country) bool { return c.Code == code })
}

// LookupService finds a service by id or display name, ignoring case and punctuation.
func LookupService(name string) (Service, bool) {
	name = squash(name)
	return lo.Find(Services, func(s Service) bool {
		return s.ID == name || squash(s.Name) == name
	})
}

// ServiceForProvider maps a catalog provider id to a canonical service id.
func ServiceForProvider(providerID int) (string, bool) {
	id, ok := byProvider[providerID]
	return id, ok
}

// Canonicalize maps provider ids to service ids. Unknown ids are dropped,
// duplicates collapse and the result follows the order of Services.
func Canonicalize(providerIDs []int) []string {
	found := make(map[string]struct{})
	for _, p := range providerIDs {
		if id, ok := byProvider[p]; ok {
			found[id] = struct{}{}
		}
	}

	return lo.Filter(ServiceIDs(), func(id string, _ int) bool {
		_, ok := found[id]
		return ok
	})
}

// ProviderIDs returns the catalog provider ids of the given services.
func ProviderIDs(services []string) []int {
	var ids []int
	for _, id := range services {
		if s, ok := LookupService(id); ok {
			ids = append(ids, s.ProviderIDs...)
		}
	}
	return lo.Uniq(ids)
}

// NormalizeCountries upper-cases, validates and deduplicates country codes, keeping selection order.
func NormalizeCountries(codes []string) ([]string, error) {
	var out []string
	for _, code := range codes {
		c, ok := LookupCountry(code)
		if !ok {
			return nil, fmt.Errorf("unknown country %q, did you mean %s?", code, Closest(strings.ToUpper(code), CountryCodes()))
		}
		out = append(out, c.Code)
	}

	out = lo.Uniq(out)
	if len(out) > MaxCountries {
		return nil, fmt.Errorf("at most %d countries can be selected, got %d", MaxCountries, len(out))
	}
	return out, nil
}

// NormalizeServices validates and deduplicates service names, returning canonical ids in selection order.
func NormalizeServices(names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		s, ok := LookupService(name)
		if !ok {
			return nil, fmt.Errorf("unknown service %q, did you mean %s?", name, Closest(strings.ToLower(name), ServiceIDs()))
		}
		out = append(out, s.ID)
	}
	return lo.Uniq(out), nil
}

// Closest suggests a candidate for a mistyped input. Candidates that contain the input's
// letters in order win, the tightest one first. Otherwise the smallest edit distance decides.
func Closest(input string, candidates []string) string {
	if ranks := fuzzy.RankFindFold(input, candidates); len(ranks) > 0 {
		return lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
			return a.Distance < b.Distance
		}).Target
	}

	return lo.MinBy(candidates, func(a, b string) bool {
		return levenshtein.Distance(input, a) < levenshtein.Distance(input, b)
	})
}

func squash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '+' || r == '-' {
			return -1
		}
		return r
	}, s)
}
