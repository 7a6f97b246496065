// Package store holds the state of an interactive search session and forwards user actions to the engine.
package store

import (
	"errors"
	"sync"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/samber/lo"
)

// AllGenres disables the genre filter.
const AllGenres = "All"

// maxGenres caps the genre list, AllGenres included.
const maxGenres = 8

var (
	ErrNoSelection      = errors.New(intersect.MsgNoSelection)
	ErrTooManyCountries = errors.New(intersect.MsgTooManyCountries)
)

type ViewMode string

const (
	Grid ViewMode = "grid"
	List ViewMode = "list"
)

// ParseViewMode falls back to Grid for unknown values.
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == List {
		return List
	}
	return Grid
}

// Options are the collaborators of a Store. A nil Cache disables memoization.
type Options struct {
	Catalog  intersect.Catalog
	Resolver intersect.Resolver
	Cache    *cache.Cache
}

// State is a read-only view of the store.
type State struct {
	Countries    []string
	Services     []string
	Kind         content.Kind
	ViewMode     ViewMode
	ActiveGenre  string
	Loading      bool
	FetchingMore bool
	HasMore      bool
	Searched     bool
	Progress     int
	Error        string
	Count        int
}

// Store is safe for concurrent use.
type Store struct {
	opts Options

	mu          sync.Mutex
	countries   []string
	services    []string
	kind        content.Kind
	viewMode    ViewMode
	activeGenre string
	results     map[content.Kind][]*content.Item

	loading      bool
	fetchingMore bool
	hasMore      bool
	searched     bool
	progress     int
	err          string

	engine     *intersect.Engine
	generation uint64

	changes chan struct{}
}

func New(opts Options) *Store {
	return &Store{
		opts:        opts,
		kind:        content.Movie,
		viewMode:    Grid,
		activeGenre: AllGenres,
		results:     make(map[content.Kind][]*content.Item),
		changes:     make(chan struct{}, 1),
	}
}

// Changes signals, coalesced, that the state changed.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Countries:    append([]string(nil), s.countries...),
		Services:     append([]string(nil), s.services...),
		Kind:         s.kind,
		ViewMode:     s.viewMode,
		ActiveGenre:  s.activeGenre,
		Loading:      s.loading,
		FetchingMore: s.fetchingMore,
		HasMore:      s.hasMore,
		Searched:     s.searched,
		Progress:     s.progress,
		Error:        s.err,
		Count:        len(s.results[s.kind]),
	}
}

// Stats returns the counters of the current search.
func (s *Store) Stats() intersect.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return intersect.Stats{}
	}
	return s.engine.Stats()
}

// ToggleCountry selects or deselects a country. Selecting beyond the limit is refused.
func (s *Store) ToggleCountry(code string) error {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.countries, code) {
		s.countries = lo.Without(s.countries, code)
		return nil
	}

	if len(s.countries) >= region.MaxCountries {
		s.err = intersect.MsgTooManyCountries
		return ErrTooManyCountries
	}

	s.countries = append(s.countries, code)
	s.err = ""
	return nil
}

func (s *Store) ToggleService(id string) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.services, id) {
		s.services = lo.Without(s.services, id)
		return
	}
	s.services = append(s.services, id)
}

// SetSelection replaces the whole selection.
func (s *Store) SetSelection(countries, services []string) error {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	countries = lo.Uniq(countries)
	if len(countries) > region.MaxCountries {
		s.err = intersect.MsgTooManyCountries
		return ErrTooManyCountries
	}

	s.countries = countries
	s.services = lo.Uniq(services)
	return nil
}

// SetMediaKind switches the displayed partition. A running search of another kind is abandoned.
func (s *Store) SetMediaKind(kind content.Kind) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == s.kind {
		return
	}

	s.kind = kind
	s.activeGenre = AllGenres
	s.discard()
}

func (s *Store) SetViewMode(mode ViewMode) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
}

// SetActiveGenre filters the results. Genres not present in the results reset the filter.
func (s *Store) SetActiveGenre(genre string) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.genres(), genre) {
		s.activeGenre = genre
	} else {
		s.activeGenre = AllGenres
	}
}

// Displayed returns every result of the current media kind.
func (s *Store) Displayed() []*content.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*content.Item(nil), s.results[s.kind]...)
}

// Filtered returns the results of the current media kind matching the active genre.
func (s *Store) Filtered() []*content.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	displayed := s.results[s.kind]
	if s.activeGenre == AllGenres {
		return append([]*content.Item(nil), displayed...)
	}
	return lo.Filter(displayed, func(i *content.Item, _ int) bool {
		return i.HasGenre(s.activeGenre)
	})
}

// Genres returns AllGenres followed by the distinct genres of the results in first-seen order.
func (s *Store) Genres() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genres()
}

func (s *Store) genres() []string {
	all := lo.FlatMap(s.results[s.kind], func(i *content.Item, _ int) []string {
		return i.Genres
	})
	genres := append([]string{AllGenres}, lo.Uniq(all)...)
	return lo.Slice(genres, 0, maxGenres)
}

// discard abandons the current engine. The caller holds mu.
func (s *Store) discard() {
	if s.engine != nil {
		s.engine.Cancel()
		s.engine = nil
	}
	s.generation++
	s.loading = false
	s.fetchingMore = false
	s.hasMore = false
	s.progress = 0
}
