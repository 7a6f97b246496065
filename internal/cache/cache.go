// Package cache memoizes searches for the lifetime of the process, keyed by the normalized selection and media kind.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Key returns the order independent key of a selection.
func Key(countries, services []string) string {
	normalize := func(values []string, fn func(string) string) string {
		values = lo.Uniq(lo.Map(values, func(v string, _ int) string {
			return fn(strings.TrimSpace(v))
		}))
		values = lo.Compact(values)
		slices.Sort(values)
		return strings.Join(values, ",")
	}

	return normalize(countries, strings.ToUpper) + "_" + normalize(services, strings.ToLower)
}

// Entry is a memoized search.
type Entry struct {
	Key       string             `json:"key"`
	Kind      content.Kind       `json:"kind"`
	Items     []*content.Item    `json:"items"`
	Snapshot  intersect.Snapshot `json:"snapshot"`
	Timestamp time.Time          `json:"timestamp"`
}

func (e *Entry) copy() *Entry {
	c := *e
	c.Items = append([]*content.Item(nil), e.Items...)
	return &c
}

type entryKey struct {
	key  string
	kind content.Kind
}

// Cache holds entries in memory. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[entryKey]*Entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[entryKey]*Entry),
		now:     time.Now,
	}
}

// Get returns a copy of the entry, if any.
func (c *Cache) Get(key string, kind content.Kind) mo.Option[*Entry] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.entries[entryKey{key, kind}]; ok {
		return mo.Some(e.copy())
	}
	return mo.None[*Entry]()
}

// Put stores entry, replacing an existing one.
func (c *Cache) Put(key string, kind content.Kind, entry *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := entry.copy()
	stored.Key, stored.Kind = key, kind
	if stored.Timestamp.IsZero() {
		stored.Timestamp = c.now()
	}
	c.entries[entryKey{key, kind}] = stored
}

// Append adds items to an entry and moves its snapshot forward, creating the entry when missing.
func (c *Cache) Append(key string, kind content.Kind, items []*content.Item, snapshot intersect.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := entryKey{key, kind}
	e, ok := c.entries[k]
	if !ok {
		e = &Entry{Key: key, Kind: kind}
		c.entries[k] = e
	}

	e.Items = append(append([]*content.Item(nil), e.Items...), items...)
	e.Snapshot = snapshot
	e.Timestamp = c.now()
}

func (c *Cache) Delete(key string, kind content.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, entryKey{key, kind})
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[entryKey]*Entry)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
