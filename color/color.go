// Package color holds the terminal colors used by the CLI and the TUI.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors. They follow the terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")

	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

// TUI palette.
var (
	Base    = New("#1e1e2e")
	Text    = New("#cdd6f4")
	Subtext = New("#a6adc8")
	Faint   = New("#6c7086")

	Accent    = New("#cba6f7")
	Secondary = New("#b4befe")
	Peach     = New("#fab387")
	Sky       = New("#89dceb")
	Orange    = New("#ffb703")

	Success = New("#a6e3a1")
	Warning = New("#f9e2af")
	Error   = New("#f38ba8")
)

// services maps canonical service ids to their brand color.
var services = map[string]lipgloss.Color{
	"netflix": New("#e50914"),
	"disney":  New("#113ccf"),
	"prime":   New("#00a8e1"),
	"apple":   New("#a2aaad"),
	"hulu":    New("#1ce783"),
}

// Service returns the brand color of a service, or Text for unknown ids.
func Service(id string) lipgloss.Color {
	if c, ok := services[id]; ok {
		return c
	}

	return Text
}
