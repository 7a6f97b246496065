// Package style renders strings with lipgloss.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/crosswatch-cli/crosswatch/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer with the given foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Tag renders s as a padded block, used for list titles and banners.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

var ErrorTitle = Tag(color.Base, color.Error)

// Service renders a service name in its brand color.
func Service(id, name string) string {
	return New().Foreground(color.Service(id)).Render(name)
}

// Rating renders a 0-10 score, colored by how good it is.
func Rating(score float64) string {
	c := color.Error
	switch {
	case score >= 7:
		c = color.Success
	case score >= 5:
		c = color.Warning
	}

	return New().Foreground(c).Render(fmt.Sprintf("%.1f", score))
}
