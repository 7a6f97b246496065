package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/crosswatch-cli/crosswatch/store"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type catalog struct{}

func (catalog) FetchPage(_ context.Context, req content.PageRequest) (*content.Page, error) {
	page := &content.Page{Number: req.Page, IsLastPage: req.Page >= 2}
	for i := 1; i <= 15; i++ {
		id := (req.Page-1)*15 + i
		page.Items = append(page.Items, &content.Candidate{
			SourceID: id,
			Title:    fmt.Sprintf("Title %d", id),
			Genres:   []string{[]string{"Drama", "Comedy"}[id%2]},
		})
	}
	return page, nil
}

type resolver struct{}

func (resolver) Resolve(_ context.Context, _ int, _ content.Kind, countries []string) (availability.Availability, error) {
	out := availability.Availability{}
	for _, c := range countries {
		out[c] = []string{"netflix", "prime"}
	}
	return out, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestBubble() *statefulBubble {
	s := store.New(store.Options{Catalog: catalog{}, Resolver: resolver{}, Cache: cache.New()})
	b := newBubble(context.Background(), &Options{Store: s, Resolver: resolver{}})
	b.resize(120, 40)
	b.setState(countriesState)
	return b
}

func press(b *statefulBubble, keys ...string) {
	for _, k := range keys {
		b.Update(keyMsg(k))
	}
}

func TestSelectionFlow(t *testing.T) {
	Convey("Given the country screen", t, func() {
		b := newTestBubble()

		Convey("Space toggles the highlighted country", func() {
			press(b, " ", "down", " ")
			So(b.store.State().Countries, ShouldResemble, []string{"KR", "US"})
			So(b.countriesC.Title, ShouldEqual, "Countries 2/2")

			Convey("And a third country is refused", func() {
				press(b, "down", " ")
				So(b.store.State().Countries, ShouldResemble, []string{"KR", "US"})
			})
		})

		Convey("Enter without a country stays put", func() {
			press(b, "enter")
			So(b.state, ShouldEqual, countriesState)
		})

		Convey("Enter with a country moves to the platforms", func() {
			press(b, " ", "enter")
			So(b.state, ShouldEqual, servicesState)

			Convey("And esc goes back", func() {
				press(b, "esc")
				So(b.state, ShouldEqual, countriesState)
			})

			Convey("And enter with a platform starts the search", func() {
				press(b, " ", "enter")
				So(b.store.State().Services, ShouldResemble, []string{"netflix"})
				So(b.state, ShouldEqual, resultsState)
				So(b.pending, ShouldEqual, 1)
			})
		})
	})
}

func TestResults(t *testing.T) {
	Convey("Given a finished first batch", t, func() {
		b := newTestBubble()
		So(b.store.SetSelection([]string{"KR", "US"}, []string{"netflix"}), ShouldBeNil)
		b.newState(resultsState)
		So(b.store.Search(context.Background()), ShouldBeNil)
		b.Update(storeChangedMsg{})

		Convey("The list mirrors the store", func() {
			So(b.resultsC.Items(), ShouldHaveLength, 20)
			So(b.resultsC.Title, ShouldEqual, "Movies in KR + US")
			So(b.viewStatus(), ShouldContainSubstring, "20 titles found")
		})

		Convey("f cycles through the genres", func() {
			press(b, "f")
			So(b.store.State().ActiveGenre, ShouldEqual, "Comedy")
			So(b.resultsC.Items(), ShouldHaveLength, 10)
			So(b.resultsC.Title, ShouldEqual, "Movies in KR + US • Comedy")
		})

		Convey("v switches the view mode", func() {
			press(b, "v")
			So(b.store.State().ViewMode, ShouldEqual, store.List)
			press(b, "v")
			So(b.store.State().ViewMode, ShouldEqual, store.Grid)
		})

		Convey("t switches to series and searches again", func() {
			press(b, "t")
			So(b.store.State().Kind, ShouldEqual, content.Series)
			So(b.pending, ShouldEqual, 1)
		})

		Convey("Providers of a title are listed per country", func() {
			item, ok := b.selectedResult()
			So(ok, ShouldBeTrue)

			avail, err := resolver{}.Resolve(context.Background(), item.SourceID, item.Kind, []string{"KR", "US"})
			So(err, ShouldBeNil)
			b.Update(providersMsg{item: item, availability: avail})

			So(b.state, ShouldEqual, providersState)
			So(b.providersC.Items(), ShouldHaveLength, 2)
			So(b.providersC.Items()[0].(*listItem).Description(), ShouldContainSubstring, "Prime Video")

			press(b, "esc")
			So(b.state, ShouldEqual, resultsState)
		})

		Convey("A failed search shows the error screen", func() {
			b.pending = 1
			b.Update(searchDoneMsg{err: errors.New("Could not load page 2 of movie titles in KR: offline")})
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "offline")

			press(b, "r")
			So(b.state, ShouldEqual, resultsState)
		})
	})
}

func TestListItem(t *testing.T) {
	Convey("Given a verified title", t, func() {
		item := &listItem{
			internal: &content.Item{
				Title:       "Parasite",
				Year:        2019,
				Genres:      []string{"Thriller"},
				AvailableOn: map[string][]string{"KR": {"netflix"}, "US": {"hulu", "prime"}},
				Description: "Greed and class discrimination.",
			},
			countries: []string{"US", "KR"},
		}

		Convey("The description follows the selection order", func() {
			So(item.Description(), ShouldStartWith, "US: Hulu, Prime Video • KR: Netflix")
			So(item.Description(), ShouldContainSubstring, "Thriller")
			So(item.Description(), ShouldNotContainSubstring, "Greed")
		})

		Convey("The overview is appended on request", func() {
			item.overview = true
			So(item.Description(), ShouldContainSubstring, "Greed")
		})

		Convey("Filtering uses the title", func() {
			So(item.FilterValue(), ShouldEqual, "Parasite")
			So(item.Title(), ShouldStartWith, "Parasite (2019)")
		})
	})
}
