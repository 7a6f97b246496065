package tui

import tea "github.com/charmbracelet/bubbletea"

// Init subscribes to store changes and, when started on the results screen, runs the first search.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForChanges(), b.syncResults()}

	if b.state == resultsState {
		cmds = append(cmds, b.startSearch())
	}

	return tea.Batch(cmds...)
}
