// Package intersect finds titles that stream in every selected country.
//
// One country, the anchor, is paginated to enumerate candidates. Every candidate is
// then checked for availability in all selected countries, and the ones covered by at
// least one selected service everywhere are streamed to the caller in batches.
package intersect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/samber/lo"
)

// BatchSize is the number of verified items a single Run aims for.
const BatchSize = 20

const (
	MsgNoSelection      = "Please select at least one country and one platform."
	MsgTooManyCountries = "You can select a maximum of 2 countries. Please deselect one first."
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCanceled         = errors.New("search canceled")
)

// Catalog lists candidate titles of a country, most popular first.
type Catalog interface {
	FetchPage(ctx context.Context, req content.PageRequest) (*content.Page, error)
}

// Resolver tells where a title streams.
type Resolver interface {
	Resolve(ctx context.Context, sourceID int, kind content.Kind, countries []string) (availability.Availability, error)
}

// Hooks receive the output of an Engine. Any of them may be nil.
// They are called from the goroutine running Engine.Run.
type Hooks struct {
	// OnResults receives the verified items of a batch, in anchor page order.
	OnResults func(items []*content.Item)
	// OnProgress is called after every availability check with the number of items verified so far in the batch.
	OnProgress func(verified int)
	// OnBatchComplete is called after a batch when more titles may follow.
	OnBatchComplete func()
	// OnFinish is called once, when the anchor has nothing left.
	OnFinish func()
	// OnError receives a user facing message for failures that end the session.
	OnError func(message string)
}

func (h Hooks) results(items []*content.Item) {
	if h.OnResults != nil && len(items) > 0 {
		h.OnResults(items)
	}
}

func (h Hooks) progress(n int) {
	if h.OnProgress != nil {
		h.OnProgress(n)
	}
}

func (h Hooks) batchComplete() {
	if h.OnBatchComplete != nil {
		h.OnBatchComplete()
	}
}

func (h Hooks) finish() {
	if h.OnFinish != nil {
		h.OnFinish()
	}
}

func (h Hooks) error(msg string) {
	if h.OnError != nil {
		h.OnError(msg)
	}
}

// Config describes one search.
type Config struct {
	Countries []string
	Services  []string
	Kind      content.Kind
	Catalog   Catalog
	Resolver  Resolver
	Hooks     Hooks
}

// Stats counts the work an Engine has done.
type Stats struct {
	Pages     int `json:"pages"`
	Checked   int `json:"checked"`
	Qualified int `json:"qualified"`
	Skipped   int `json:"skipped"`
}

// Engine runs one search session.
type Engine struct {
	catalog  Catalog
	resolver Resolver
	hooks    Hooks

	busy     atomic.Bool
	canceled atomic.Bool

	mu       sync.Mutex
	session  *Session
	stats    Stats
	finished bool
	failed   bool
}

// New validates the selection and returns an engine ready to Run.
// Selection errors are reported through OnError as well as returned.
func New(cfg Config) (*Engine, error) {
	countries := lo.Uniq(cfg.Countries)
	services := lo.Uniq(cfg.Services)

	if len(countries) == 0 || len(services) == 0 {
		cfg.Hooks.error(MsgNoSelection)
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, MsgNoSelection)
	}
	if len(countries) > region.MaxCountries {
		cfg.Hooks.error(MsgTooManyCountries)
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, MsgTooManyCountries)
	}
	if cfg.Catalog == nil || cfg.Resolver == nil {
		return nil, errors.New("engine needs a catalog and a resolver")
	}

	kind := cfg.Kind
	if kind == "" {
		kind = content.Movie
	}

	return &Engine{
		catalog:  cfg.Catalog,
		resolver: cfg.Resolver,
		hooks:    cfg.Hooks,
		session:  newSession(countries, services, kind),
	}, nil
}

// Restore creates an engine that resumes from snap instead of starting over.
// The snapshot's country order wins over the one in cfg so the anchor stays the same.
func Restore(cfg Config, snap Snapshot) (*Engine, error) {
	if len(snap.Countries) > 0 {
		cfg.Countries = snap.Countries
	}

	e, err := New(cfg)
	if err != nil {
		return nil, err
	}

	e.session.restore(snap)
	e.finished = snap.Finished
	return e, nil
}

// Anchor returns the country whose catalog is enumerated.
func (e *Engine) Anchor() string {
	return e.session.anchor()
}

// Busy reports whether a batch is in flight.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// Done reports whether further Run calls can produce anything.
func (e *Engine) Done() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished || e.failed || e.canceled.Load()
}

// Cancel stops the engine at its next suspension point. No hook is called afterwards.
func (e *Engine) Cancel() {
	e.canceled.Store(true)
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Snapshot returns a copy of the session progress.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.snapshot(e.finished)
}

func (e *Engine) stopped(ctx context.Context) bool {
	return e.canceled.Load() || ctx.Err() != nil
}

// Run pulls one batch of up to BatchSize verified items and reports it through the hooks.
// A call made while another is in flight, or after the session ended, does nothing.
// The returned error mirrors what OnError was told, or reports cancellation.
// A batch interrupted by cancellation delivers nothing and is checked again by the next Run.
func (e *Engine) Run(ctx context.Context) error {
	if !e.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer e.busy.Store(false)

	if e.stopped(ctx) {
		return ErrCanceled
	}
	if e.Done() {
		return nil
	}

	s := e.session
	anchor := s.anchor()
	cursor := s.Cursors[anchor]

	e.mu.Lock()
	before := e.stats
	e.mu.Unlock()

	var (
		batch []*content.Item
		taken []*content.Candidate
	)
	for len(batch) < BatchSize {
		if len(s.pending) == 0 {
			if cursor.LastPage {
				break
			}

			page, err := e.catalog.FetchPage(ctx, content.PageRequest{
				Country:  anchor,
				Kind:     s.Kind,
				Page:     cursor.Page,
				Services: s.Services,
			})
			if e.stopped(ctx) {
				e.rollback(taken, before)
				return ErrCanceled
			}
			if err != nil {
				return e.fail(batch, cursor.Page, err)
			}

			e.mu.Lock()
			e.stats.Pages++
			cursor.Page++
			s.pending = append(s.pending, page.Items...)
			if page.IsLastPage || len(page.Items) == 0 {
				cursor.LastPage = true
			}
			e.mu.Unlock()
			continue
		}

		e.mu.Lock()
		candidate := s.pending[0]
		s.pending = s.pending[1:]
		if s.seen(candidate.SourceID) {
			e.mu.Unlock()
			continue
		}
		s.Seen[candidate.SourceID] = struct{}{}
		taken = append(taken, candidate)
		e.mu.Unlock()

		item, err := e.check(ctx, candidate)
		if e.stopped(ctx) {
			e.rollback(taken, before)
			return ErrCanceled
		}

		e.mu.Lock()
		e.stats.Checked++
		switch {
		case err != nil:
			e.stats.Skipped++
			log.Warning(log.Fields{
				"sourceId": candidate.SourceID,
				"title":    candidate.Title,
				"error":    err.Error(),
			}, "availability check failed, title skipped")
		case item != nil:
			e.stats.Qualified++
			batch = append(batch, item)
		}
		e.mu.Unlock()

		e.hooks.progress(len(batch))
	}

	e.mu.Lock()
	cursor.Exhausted = cursor.Exhausted || (cursor.LastPage && len(s.pending) == 0)
	s.Emitted += len(batch)
	finish := cursor.Exhausted && !e.finished
	e.finished = e.finished || cursor.Exhausted
	e.mu.Unlock()

	e.hooks.results(batch)
	if finish {
		e.hooks.finish()
	} else {
		e.hooks.batchComplete()
	}
	return nil
}

// rollback returns the candidates taken by an interrupted batch to the front of the queue
// so the next Run checks them again. Nothing of that batch was delivered yet.
func (e *Engine) rollback(taken []*content.Candidate, before Stats) {
	s := e.session

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range taken {
		delete(s.Seen, c.SourceID)
	}
	s.pending = append(taken, s.pending...)
	e.stats.Checked = before.Checked
	e.stats.Qualified = before.Qualified
	e.stats.Skipped = before.Skipped
}

// check resolves a candidate and returns it as an item when every country is covered.
func (e *Engine) check(ctx context.Context, c *content.Candidate) (*content.Item, error) {
	s := e.session
	avail, err := e.resolver.Resolve(ctx, c.SourceID, s.Kind, s.Countries)
	if err != nil {
		return nil, err
	}

	covered, ok := avail.CoversAll(s.Countries, s.Services)
	if !ok {
		return nil, nil
	}
	return content.NewItem(c, s.Kind, covered), nil
}

// fail ends the session after a page could not be fetched.
// Items verified on earlier pages are still delivered.
func (e *Engine) fail(batch []*content.Item, page int, err error) error {
	s := e.session

	e.mu.Lock()
	e.failed = true
	s.Emitted += len(batch)
	e.mu.Unlock()

	log.Warning(log.Fields{
		"country": s.anchor(),
		"kind":    s.Kind,
		"page":    page,
		"error":   err.Error(),
	}, "catalog page fetch failed")

	msg := fmt.Sprintf("Could not load page %d of %s titles in %s: %v", page, s.Kind.Label(), s.anchor(), err)
	e.hooks.results(batch)
	e.hooks.error(msg)
	return fmt.Errorf("fetch page %d of %s: %w", page, s.anchor(), err)
}
