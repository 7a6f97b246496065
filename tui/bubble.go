package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/internal/ui"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/store"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble holds the application state, the component models and the navigation history.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	countriesC list.Model
	servicesC  list.Model
	resultsC   list.Model
	providersC list.Model
	progressC  progress.Model
	helpC      help.Model

	store *store.Store
	ctx   context.Context
	// pending counts search commands that have not returned yet
	pending int

	// selectedItem is the title whose providers are shown
	selectedItem *content.Item
	lastError    error

	width, height int
	listWidth     int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is the error screen.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if prev, ok := b.statesHistory.Pop().Get(); ok {
		b.setState(prev)
	}
}

// statusLines is the space taken by the search status above the results list.
const statusLines = 2

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.countriesC, &b.servicesC, &b.providersC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.resultsC.SetSize(listWidth, listHeight-statusLines)
	b.resultsC.Help.Width = listWidth

	b.progressC.Width = min(listWidth/3, 40)
	b.helpC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.listWidth = listWidth
}

// makeDelegate renders items with an accent border on the selected one.
// height counts the title line.
func makeDelegate(description bool, height int) list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = description
	delegate.SetHeight(height)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color.Accent).
		Foreground(color.Accent).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle
	return delegate
}

// resultsDelegate follows the view mode: grid shows titles only, list adds availability
// and, with tui.show_description, the overview.
func (b *statefulBubble) resultsDelegate(mode store.ViewMode) list.DefaultDelegate {
	if mode == store.Grid {
		return makeDelegate(false, 1)
	}
	if viper.GetBool(key.TUIShowDescription) {
		return makeDelegate(true, 4)
	}
	return makeDelegate(true, 2)
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		store:         options.Store,
		ctx:           ctx,
		notifier:      &ui.Model{},
		options:       options,
	}

	if options.Kind != "" {
		options.Store.SetMediaKind(options.Kind)
	}
	options.Store.SetViewMode(store.ParseViewMode(viper.GetString(key.TUIViewMode)))

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, delegate list.DefaultDelegate, options *listOptions) list.Model {
		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.countriesC = makeList("Countries", makeDelegate(false, 1), &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Base).Background(color.Accent).Padding(0, 1),
		),
	})
	bubble.servicesC = makeList("Platforms", makeDelegate(false, 1), &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Base).Background(color.Peach).Padding(0, 1),
		),
	})
	bubble.resultsC = makeList("Results", bubble.resultsDelegate(options.Store.State().ViewMode), &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Base).Background(color.Secondary).Padding(0, 1),
		),
	})
	bubble.resultsC.SetStatusBarItemName("title", "titles")
	bubble.providersC = makeList("Providers", makeDelegate(true, 2), &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Base).Background(color.Sky).Padding(0, 1),
		),
	})
	bubble.providersC.StatusMessageLifetime = time.Hour

	bubble.syncSelection()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

func (b *statefulBubble) countryItems() []list.Item {
	selected := b.store.State().Countries
	items := make([]list.Item, len(region.Countries))
	for i, c := range region.Countries {
		items[i] = &listItem{internal: c, marked: lo.Contains(selected, c.Code)}
	}
	return items
}

func (b *statefulBubble) serviceItems() []list.Item {
	selected := b.store.State().Services
	items := make([]list.Item, len(region.Services))
	for i, s := range region.Services {
		items[i] = &listItem{internal: s, marked: lo.Contains(selected, s.ID)}
	}
	return items
}
