package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/internal/ui"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/open"
	"github.com/crosswatch-cli/crosswatch/recent"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/store"
	"github.com/crosswatch-cli/crosswatch/tmdb"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type (
	storeChangedMsg struct{}
	searchDoneMsg   struct{ err error }
	loadMoreDoneMsg struct{}
	providersMsg    struct {
		item         *content.Item
		availability availability.Availability
		err          error
	}
)

// waitForChanges delivers the next store notification.
func (b *statefulBubble) waitForChanges() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.store.Changes():
			return storeChangedMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) startSearch() tea.Cmd {
	state := b.store.State()
	if err := recent.Remember(state.Countries, state.Services); err != nil {
		log.Warnf("remember selection: %v", err)
	}

	b.pending++
	return tea.Batch(
		func() tea.Msg {
			return searchDoneMsg{err: b.store.Search(b.ctx)}
		},
		b.spinnerC.Tick,
	)
}

func (b *statefulBubble) loadMore() tea.Cmd {
	state := b.store.State()
	if !state.HasMore || state.Loading || state.FetchingMore {
		return nil
	}

	b.pending++
	return tea.Batch(
		func() tea.Msg {
			// the error reaches the view through the store state
			_, _ = b.store.LoadMore(b.ctx)
			return loadMoreDoneMsg{}
		},
		b.spinnerC.Tick,
	)
}

func (b *statefulBubble) fetchProviders(item *content.Item) tea.Cmd {
	countries := b.store.State().Countries
	return func() tea.Msg {
		if b.options.Resolver == nil {
			return providersMsg{item: item, err: errors.New("provider lookup is not available")}
		}
		avail, err := b.options.Resolver.Resolve(b.ctx, item.SourceID, item.Kind, countries)
		return providersMsg{item: item, availability: avail, err: err}
	}
}

func (b *statefulBubble) openURL(item *content.Item) tea.Cmd {
	url := tmdb.WebURL(item.Kind, item.SourceID)
	if err := open.URL(url); err != nil {
		return ui.Notify(fmt.Sprintf("Could not open %s", url))
	}
	return ui.Notify("Opened " + item.Title)
}

func (b *statefulBubble) selectedResult() (*content.Item, bool) {
	var l *list.Model
	switch b.state {
	case providersState:
		return b.selectedItem, b.selectedItem != nil
	case resultsState:
		l = &b.resultsC
	default:
		return nil, false
	}

	selected, ok := l.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	item, ok := selected.internal.(*content.Item)
	return item, ok
}

// syncResults mirrors the store into the results list.
func (b *statefulBubble) syncResults() tea.Cmd {
	state := b.store.State()
	overview := state.ViewMode == store.List && viper.GetBool(key.TUIShowDescription)

	items := lo.Map(b.store.Filtered(), func(item *content.Item, _ int) list.Item {
		return &listItem{
			internal:  item,
			countries: state.Countries,
			overview:  overview,
			width:     b.listWidth,
		}
	})

	b.resultsC.Title = resultsTitle(state)
	return b.resultsC.SetItems(items)
}

func resultsTitle(state store.State) string {
	var sb strings.Builder
	sb.WriteString(state.Kind.Label())
	sb.WriteString("s in ")
	sb.WriteString(strings.Join(state.Countries, " + "))
	if state.ActiveGenre != store.AllGenres {
		sb.WriteString(" • ")
		sb.WriteString(state.ActiveGenre)
	}
	return sb.String()
}

func (b *statefulBubble) syncSelection() tea.Cmd {
	b.countriesC.Title = fmt.Sprintf("Countries %d/%d", len(b.store.State().Countries), region.MaxCountries)
	return tea.Batch(b.countriesC.SetItems(b.countryItems()), b.servicesC.SetItems(b.serviceItems()))
}

func (b *statefulBubble) showProviders(msg providersMsg) tea.Cmd {
	state := b.store.State()
	items := lo.FilterMap(state.Countries, func(code string, _ int) (list.Item, bool) {
		country, ok := region.LookupCountry(code)
		if !ok {
			return nil, false
		}
		return &listItem{internal: providerLine{
			country:  country,
			services: msg.availability[code],
			selected: state.Services,
		}}, true
	})

	b.selectedItem = msg.item
	b.providersC.Title = "Where to watch " + msg.item.String()
	return b.providersC.SetItems(items)
}
