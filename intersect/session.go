package intersect

import (
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Cursor tracks pagination of one country's catalog.
// Page is the next page to fetch. LastPage is set once the catalog reported its final page,
// Exhausted once that page's candidates are consumed too. Both never revert.
type Cursor struct {
	Page      int  `json:"page"`
	LastPage  bool `json:"lastPage"`
	Exhausted bool `json:"exhausted"`
}

// Session is the state of one search. It is owned by a single Engine.
type Session struct {
	Countries []string
	Services  []string
	Kind      content.Kind
	Cursors   map[string]*Cursor
	Seen      map[int]struct{}
	Emitted   int

	// candidates of a fetched page not checked yet because the batch filled up
	pending []*content.Candidate
}

func newSession(countries, services []string, kind content.Kind) *Session {
	s := &Session{
		Countries: countries,
		Services:  services,
		Kind:      kind,
		Cursors:   make(map[string]*Cursor, len(countries)),
		Seen:      make(map[int]struct{}),
	}
	for _, c := range countries {
		s.Cursors[c] = &Cursor{Page: 1}
	}
	return s
}

func (s *Session) anchor() string {
	return s.Countries[0]
}

func (s *Session) seen(sourceID int) bool {
	_, ok := s.Seen[sourceID]
	return ok
}

// Snapshot is a detached copy of a session's progress, enough to resume it later.
// Countries keeps the selection order, which decides the anchor.
type Snapshot struct {
	Countries []string             `json:"countries"`
	Cursors   map[string]Cursor    `json:"cursors"`
	Seen      []int                `json:"seen"`
	Emitted   int                  `json:"emitted"`
	Pending   []*content.Candidate `json:"pending,omitempty"`
	Finished  bool                 `json:"finished"`
}

func (s *Session) snapshot(finished bool) Snapshot {
	seen := lo.Keys(s.Seen)
	slices.Sort(seen)

	cursors := lo.MapValues(s.Cursors, func(c *Cursor, _ string) Cursor {
		return *c
	})

	return Snapshot{
		Countries: append([]string(nil), s.Countries...),
		Cursors:   cursors,
		Seen:      seen,
		Emitted:   s.Emitted,
		Pending:   append([]*content.Candidate(nil), s.pending...),
		Finished:  finished,
	}
}

func (s *Session) restore(snap Snapshot) {
	for country, c := range snap.Cursors {
		if cur, ok := s.Cursors[country]; ok {
			*cur = c
		}
	}
	for _, id := range snap.Seen {
		s.Seen[id] = struct{}{}
	}
	s.Emitted = snap.Emitted
	s.pending = append([]*content.Candidate(nil), snap.Pending...)
}
