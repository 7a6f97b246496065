package store

import (
	"context"
	"errors"
	"time"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/log"
)

// search is one started search, used to drop callbacks of replaced engines.
type search struct {
	generation uint64
	key        string
	kind       content.Kind
	countries  []string
	services   []string
	startedAt  time.Time
}

func (q search) fields() log.Fields {
	return log.Fields{
		"countries": q.countries,
		"services":  q.services,
		"kind":      q.kind,
	}
}

// Search starts a new search for the current selection and runs its first batch.
// An identical earlier search is restored from the cache without touching the network.
func (s *Store) Search(ctx context.Context) error {
	s.mu.Lock()
	if len(s.countries) == 0 || len(s.services) == 0 {
		s.err = intersect.MsgNoSelection
		s.mu.Unlock()
		s.notify()
		return ErrNoSelection
	}

	s.discard()
	q := s.newSearch()
	s.err = ""
	s.searched = true
	s.activeGenre = AllGenres
	s.results[q.kind] = nil

	var (
		entry *cache.Entry
		hit   bool
	)
	if s.opts.Cache != nil {
		entry, hit = s.opts.Cache.Get(q.key, q.kind).Get()
	}
	cfg := s.config(q)
	s.mu.Unlock()

	var (
		engine *intersect.Engine
		err    error
	)
	if hit {
		engine, err = intersect.Restore(cfg, entry.Snapshot)
	} else {
		engine, err = intersect.New(cfg)
	}
	if err != nil {
		s.notify()
		return err
	}

	s.mu.Lock()
	if s.generation != q.generation {
		s.mu.Unlock()
		engine.Cancel()
		return nil
	}
	s.engine = engine
	if hit {
		s.results[q.kind] = entry.Items
		s.hasMore = !entry.Snapshot.Finished
	} else {
		s.loading = true
		s.hasMore = true
	}
	s.mu.Unlock()
	s.notify()

	if hit {
		fields := q.fields()
		fields["items"] = len(entry.Items)
		log.WithFields(fields, "search restored from cache")
		return nil
	}

	log.WithFields(q.fields(), "search initiated")
	return s.run(ctx, q, engine)
}

// newSearch describes a search of the current selection. The caller holds mu.
func (s *Store) newSearch() search {
	return search{
		generation: s.generation,
		key:        cache.Key(s.countries, s.services),
		kind:       s.kind,
		countries:  append([]string(nil), s.countries...),
		services:   append([]string(nil), s.services...),
		startedAt:  time.Now(),
	}
}

// LoadMore runs the next batch of the current search and returns its error, which is
// also kept in the state. It reports false without doing anything while a batch is loading,
// when nothing is left or when no search was started.
func (s *Store) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.loading || s.fetchingMore || !s.hasMore || s.engine == nil {
		s.mu.Unlock()
		return false, nil
	}

	s.fetchingMore = true
	s.progress = 0
	engine := s.engine
	q := s.newSearch()
	s.mu.Unlock()
	s.notify()

	return true, s.run(ctx, q, engine)
}

func (s *Store) run(ctx context.Context, q search, engine *intersect.Engine) error {
	err := engine.Run(ctx)

	s.mu.Lock()
	current := s.generation == q.generation
	if current {
		s.loading = false
		s.fetchingMore = false
	}
	s.mu.Unlock()

	if !current || errors.Is(err, intersect.ErrCanceled) {
		return nil
	}
	s.notify()
	return err
}

// current runs fn under the lock only if q still belongs to the active search.
func (s *Store) current(q search, fn func()) {
	s.mu.Lock()
	if s.generation != q.generation {
		s.mu.Unlock()
		return
	}
	fn()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) config(q search) intersect.Config {
	return intersect.Config{
		Countries: q.countries,
		Services:  q.services,
		Kind:      q.kind,
		Catalog:   s.opts.Catalog,
		Resolver:  s.opts.Resolver,
		Hooks: intersect.Hooks{
			OnResults: func(items []*content.Item) {
				s.current(q, func() {
					s.results[q.kind] = append(s.results[q.kind], items...)
					if s.opts.Cache != nil && s.engine != nil {
						s.opts.Cache.Append(q.key, q.kind, items, s.engine.Snapshot())
					}
				})
			},
			OnProgress: func(verified int) {
				s.current(q, func() { s.progress = verified })
			},
			OnBatchComplete: func() {
				s.current(q, func() {
					s.loading = false
					s.fetchingMore = false
					s.progress = 0
				})
			},
			OnFinish: func() {
				s.current(q, func() {
					s.loading = false
					s.fetchingMore = false
					s.hasMore = false
					s.progress = 0
					if s.opts.Cache != nil && s.engine != nil {
						s.opts.Cache.Append(q.key, q.kind, nil, s.engine.Snapshot())
					}
				})

				fields := q.fields()
				fields["duration"] = time.Since(q.startedAt).String()
				log.WithFields(fields, "search completed")
			},
			OnError: func(message string) {
				s.current(q, func() {
					s.err = message
					s.loading = false
					s.fetchingMore = false
					s.hasMore = false
					s.progress = 0
					if s.opts.Cache != nil {
						s.opts.Cache.Delete(q.key, q.kind)
					}
				})

				fields := q.fields()
				fields["error"] = message
				log.Warning(fields, "search error")
			},
		},
	}
}
