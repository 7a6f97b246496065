// Package tui provides the interactive terminal user interface.
package tui

import (
	"context"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/store"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the interface. When both Countries and Services are given
// the selection screens are skipped and the search starts right away.
type Options struct {
	Store *store.Store

	// Resolver answers the on-demand provider lookup of a single title.
	Resolver intersect.Resolver

	Countries []string
	Services  []string
	Kind      content.Kind
}

// Run executes the Bubble Tea program until the user quits.
func Run(ctx context.Context, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, options)

	if len(options.Countries) > 0 && len(options.Services) > 0 {
		if err := options.Store.SetSelection(options.Countries, options.Services); err != nil {
			return err
		}
		bubble.syncSelection()
		bubble.newState(resultsState)
	} else {
		bubble.setState(countriesState)
	}
	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
