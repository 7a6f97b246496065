package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/mozillazg/go-unidecode"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
)

// providerLine is one country of the full provider listing.
type providerLine struct {
	country  region.Country
	services []string
	selected []string
}

// listItem implements the list.Item interface, wrapping the domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool

	// countries orders the availability line of results
	countries []string
	// overview adds the title description to results
	overview bool
	width    int
}

func (t *listItem) getMark() string {
	return lipgloss.NewStyle().Bold(true).Foreground(color.Accent).Render(icon.Get(icon.Mark))
}

func serviceNames(ids []string) []string {
	return lo.Map(ids, func(id string, _ int) string {
		if s, ok := region.LookupService(id); ok {
			return s.Name
		}
		return id
	})
}

// serviceLabels renders service names in their brand colors.
func serviceLabels(ids []string) []string {
	names := serviceNames(ids)
	return lo.Map(ids, func(id string, i int) string {
		return style.Service(id, names[i])
	})
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case region.Country:
		title = fmt.Sprintf("%s %s", e.Flag, e.Name)
	case region.Service:
		title = e.Name
	case *content.Item:
		title = e.String()
		if e.Rating > 0 {
			title += " " + icon.Get(icon.Star) + " " + style.Rating(e.Rating)
		}
	case providerLine:
		title = fmt.Sprintf("%s %s", e.country.Flag, e.country.Name)
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case region.Country:
		description = e.Code
	case region.Service:
		description = e.ID
	case *content.Item:
		parts := lo.FilterMap(t.countries, func(country string, _ int) (string, bool) {
			services := e.AvailableOn[country]
			if len(services) == 0 {
				return "", false
			}
			return country + ": " + strings.Join(serviceLabels(services), ", "), true
		})
		description = strings.Join(parts, " • ")

		if len(e.Genres) > 0 {
			description += "  " + lipgloss.NewStyle().Foreground(color.Faint).Render(strings.Join(e.Genres, ", "))
		}

		if t.overview && e.Description != "" {
			overview := e.Description
			if t.width > 0 {
				overview = wordwrap.String(overview, t.width)
			}
			description += "\n" + lipgloss.NewStyle().Foreground(color.Subtext).Render(overview)
		}
	case providerLine:
		if len(e.services) == 0 {
			return style.Faint("not streaming on any known platform")
		}
		names := lo.Map(e.services, func(id string, _ int) string {
			name := serviceNames([]string{id})[0]
			if lo.Contains(e.selected, id) {
				return style.Bold(style.Service(id, name))
			}
			return name
		})
		description = strings.Join(names, ", ")
	}

	return
}

// FilterValue of a result includes an ASCII transliteration of its title,
// so "amelie" finds "Amélie".
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case region.Country:
		return e.Name
	case region.Service:
		return e.Name
	case *content.Item:
		if ascii := unidecode.Unidecode(e.Title); ascii != e.Title {
			return e.Title + " " + ascii
		}
		return e.Title
	case providerLine:
		return e.country.Name
	case string:
		return e
	default:
		return ""
	}
}
