package content

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Candidate is a title as listed by the catalog, before availability is verified.
type Candidate struct {
	SourceID    int      `json:"sourceId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Year        int      `json:"year"`
	PosterURL   string   `json:"posterUrl"`
	Genres      []string `json:"genres"`
}

// PageRequest asks the catalog for one page of candidates in a country.
// Services is a hint; the catalog may use it to narrow the listing.
type PageRequest struct {
	Country  string
	Kind     Kind
	Page     int
	Services []string
}

// Page is one page of candidates ordered by popularity.
type Page struct {
	Number     int          `json:"number"`
	Items      []*Candidate `json:"items"`
	IsLastPage bool         `json:"isLastPage"`
}

// Item is a title verified to be available in every selected country.
// It is never modified after it has been emitted.
type Item struct {
	ID          string              `json:"id"`
	SourceID    int                 `json:"sourceId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Kind        Kind                `json:"kind"`
	Rating      float64             `json:"rating"`
	Year        int                 `json:"year"`
	PosterURL   string              `json:"posterUrl"`
	AvailableOn map[string][]string `json:"availableOn" jsonschema:"description=Selected services per country the title was verified on"`
	Genres      []string            `json:"genres"`
}

// NewItem builds a verified item from a candidate.
func NewItem(c *Candidate, kind Kind, availableOn map[string][]string) *Item {
	return &Item{
		ID:          uuid.NewString(),
		SourceID:    c.SourceID,
		Title:       c.Title,
		Description: c.Description,
		Kind:        kind,
		Rating:      c.Rating,
		Year:        c.Year,
		PosterURL:   c.PosterURL,
		AvailableOn: availableOn,
		Genres:      append([]string(nil), c.Genres...),
	}
}

// Services returns the union of verified services across countries, in first-seen order of countries given.
func (i *Item) Services(countries []string) []string {
	var all []string
	for _, c := range countries {
		all = append(all, i.AvailableOn[c]...)
	}
	return lo.Uniq(all)
}

// HasGenre reports whether the item is tagged with genre.
func (i *Item) HasGenre(genre string) bool {
	return lo.Contains(i.Genres, genre)
}

func (i *Item) String() string {
	if i.Year > 0 {
		return fmt.Sprintf("%s (%d)", i.Title, i.Year)
	}
	return i.Title
}
