package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/crosswatch-cli/crosswatch/auth"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/internal/cache"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/crosswatch-cli/crosswatch/tmdb"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// newCatalog builds the catalog client. Without a configured key an interactive
// terminal is asked for one, which is then stored in the keyring.
func newCatalog() (*tmdb.Client, error) {
	client, err := tmdb.NewFromConfig()
	if !errors.Is(err, tmdb.ErrNoAPIKey) {
		return client, err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		printMissingKeyError()
		return nil, err
	}

	apiKey, err := promptAPIKey()
	if err != nil {
		return nil, err
	}
	if err := auth.SetAPIKey(apiKey); err != nil {
		fmt.Fprintf(os.Stderr, "%s could not store the key in the keyring: %v\n", icon.Get(icon.Fail), err)
	}

	viper.Set(key.CatalogAPIKey, apiKey)
	return tmdb.NewFromConfig()
}

func promptAPIKey() (string, error) {
	var apiKey string
	err := survey.AskOne(&survey.Password{
		Message: "TMDB API key",
		Help:    "Create one at https://www.themoviedb.org/settings/api. A v3 key or a v4 read token works.",
	}, &apiKey, survey.WithValidator(survey.Required))
	return strings.TrimSpace(apiKey), err
}

// newSessionCache returns nil when caching is disabled.
func newSessionCache() *cache.Cache {
	if !viper.GetBool(key.CacheEnable) {
		return nil
	}
	return cache.New()
}

func printMissingKeyError() {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Error).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.Error).Render(fmt.Sprintf("%s Error: Missing API key", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.Text).Render("Searching needs a TMDB API key.")
	suggestion := fmt.Sprintf(
		"\n\nStore one in the keyring:\n  %s\nor export it:\n  %s",
		style.New().Foreground(color.Accent).Bold(true).Render("crosswatch auth set"),
		style.New().Foreground(color.Accent).Bold(true).Render("CROSSWATCH_CATALOG_API_KEY=..."),
	)

	fmt.Fprintln(os.Stderr, box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
