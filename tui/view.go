package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/intersect"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case countriesState:
		output = b.viewCountries()
	case servicesState:
		output = b.viewServices()
	case resultsState:
		output = b.viewResults()
	case providersState:
		output = listExtraPaddingStyle.Render(b.providersC.View())
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewCountries() string {
	return listExtraPaddingStyle.Render(b.countriesC.View())
}

func (b *statefulBubble) viewServices() string {
	return listExtraPaddingStyle.Render(b.servicesC.View())
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.viewStatus() + "\n\n" + b.resultsC.View())
}

// viewStatus is the line above the results: progress of the running batch or a summary.
func (b *statefulBubble) viewStatus() string {
	state := b.store.State()

	switch {
	case state.Loading || state.FetchingMore:
		verified := min(state.Progress, intersect.BatchSize)
		return fmt.Sprintf(
			"%s Checking availability %d/%d %s",
			b.spinnerC.View(),
			verified,
			intersect.BatchSize,
			b.progressC.ViewAs(float64(verified)/float64(intersect.BatchSize)),
		)
	case state.Error != "":
		return style.Fg(color.Error)(icon.Get(icon.Fail) + " " + state.Error)
	case state.Searched && state.Count == 0:
		return style.Faint("No titles stream in all selected countries.")
	case state.Searched:
		summary := util.Quantify(state.Count, "title", "titles") + " found"
		if state.HasMore {
			summary += style.Faint(" • press m for more")
		} else {
			summary += style.Faint(" • end of catalog")
		}
		return icon.Get(icon.Success) + " " + summary
	default:
		return ""
	}
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Error).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " The search stopped:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
