// Package ui shows short-lived notifications at the bottom of the TUI.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// NotifyMsg carries a notification text.
type NotifyMsg string

// ClearNotificationMsg hides the notification it was scheduled for.
type ClearNotificationMsg struct {
	id int
}

var notificationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Model holds the current notification.
type Model struct {
	notification string
	id           int
}

// Notify returns a command that shows msg.
func Notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg(msg)
	}
}

func clearAfter(id int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{id: id}
	})
}

// Update handles notification messages. Messages of other types are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.notification = string(msg)
		m.id++
		return clearAfter(m.id)
	case ClearNotificationMsg:
		// a newer notification replaced the one this tick was for
		if msg.id == m.id {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the visible text, if any.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + notificationStyle.Render(m.notification)
	return strings.Join(lines, "\n")
}
