package tui

import (
	"errors"
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/internal/ui"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/store"
	"github.com/samber/lo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Notifications are handled in every state
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		cmds = append(cmds, b.syncResults())
	case spinner.TickMsg:
		if b.searching() {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
		return b, tea.Batch(cmds...)
	case storeChangedMsg:
		return b, tea.Batch(append(cmds, b.syncResults(), b.waitForChanges())...)
	case searchDoneMsg:
		b.pending--
		switch {
		case msg.err == nil:
		case errors.Is(msg.err, store.ErrNoSelection), errors.Is(msg.err, intersect.ErrInvalidSelection):
			cmds = append(cmds, ui.Notify(b.store.State().Error))
		default:
			b.raiseError(msg.err)
		}
		return b, tea.Batch(cmds...)
	case loadMoreDoneMsg:
		b.pending--
		if message := b.store.State().Error; message != "" {
			b.raiseError(errors.New(message))
		}
		return b, tea.Batch(cmds...)
	case providersMsg:
		if msg.err != nil {
			return b, tea.Batch(append(cmds, ui.Notify(fmt.Sprintf("Could not load providers: %v", msg.err)))...)
		}
		cmds = append(cmds, b.showProviders(msg))
		b.newState(providersState)
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back) && b.state != countriesState:
			b.previousState()
			return b, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case countriesState:
		cmd = b.updateCountries(msg)
	case servicesState:
		cmd = b.updateServices(msg)
	case resultsState:
		cmd = b.updateResults(msg)
	case providersState:
		cmd = b.updateProviders(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) searching() bool {
	return b.pending > 0
}

func selectedInternal[T any](l *list.Model) (T, bool) {
	var zero T
	item, ok := l.SelectedItem().(*listItem)
	if !ok {
		return zero, false
	}
	internal, ok := item.internal.(T)
	return internal, ok
}

func (b *statefulBubble) updateCountries(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			country, ok := selectedInternal[region.Country](&b.countriesC)
			if !ok {
				return nil
			}
			if err := b.store.ToggleCountry(country.Code); err != nil {
				return tea.Batch(ui.Notify(err.Error()), b.syncSelection())
			}
			return b.syncSelection()
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			_ = b.store.SetSelection(nil, b.store.State().Services)
			return b.syncSelection()
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if len(b.store.State().Countries) == 0 {
				return ui.Notify(intersect.MsgNoSelection)
			}
			b.newState(servicesState)
			return nil
		}
	}

	b.countriesC, cmd = b.countriesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateServices(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			service, ok := selectedInternal[region.Service](&b.servicesC)
			if !ok {
				return nil
			}
			b.store.ToggleService(service.ID)
			return b.syncSelection()
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			_ = b.store.SetSelection(b.store.State().Countries, nil)
			return b.syncSelection()
		case bubblesKey.Matches(msg, b.keymap.search):
			if len(b.store.State().Services) == 0 {
				return ui.Notify(intersect.MsgNoSelection)
			}
			b.newState(resultsState)
			b.resultsC.ResetSelected()
			return b.startSearch()
		}
	}

	b.servicesC, cmd = b.servicesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.more):
			return b.loadMore()
		case bubblesKey.Matches(msg, b.keymap.genre):
			genres := b.store.Genres()
			next := (lo.IndexOf(genres, b.store.State().ActiveGenre) + 1) % len(genres)
			b.store.SetActiveGenre(genres[next])
			b.resultsC.ResetSelected()
			return b.syncResults()
		case bubblesKey.Matches(msg, b.keymap.viewMode):
			mode := store.List
			if b.store.State().ViewMode == store.List {
				mode = store.Grid
			}
			b.store.SetViewMode(mode)
			b.resultsC.SetDelegate(b.resultsDelegate(mode))
			return b.syncResults()
		case bubblesKey.Matches(msg, b.keymap.kind):
			kind := content.Series
			if b.store.State().Kind == content.Series {
				kind = content.Movie
			}
			b.store.SetMediaKind(kind)
			b.resultsC.ResetSelected()
			return b.startSearch()
		case bubblesKey.Matches(msg, b.keymap.retry):
			b.resultsC.ResetSelected()
			return b.startSearch()
		case bubblesKey.Matches(msg, b.keymap.providers):
			if item, ok := b.selectedResult(); ok {
				return tea.Batch(ui.Notify("Looking up providers..."), b.fetchProviders(item))
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if item, ok := b.selectedResult(); ok {
				return b.openURL(item)
			}
			return nil
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateProviders(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.openURL) {
		if item, ok := b.selectedResult(); ok {
			return b.openURL(item)
		}
	}

	b.providersC, cmd = b.providersC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.retry):
			b.previousState()
			if b.state == resultsState {
				return b.startSearch()
			}
		}
	}

	return nil
}
