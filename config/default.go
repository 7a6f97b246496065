package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single registered configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
	// Secret values are masked when displayed.
	Secret bool
}

// Pretty returns a colored, multi-line description of the field.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Crosswatch + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type is the Go type of the value, as shown by "config info".
func (f *Field) Type() string {
	return reflect.TypeOf(f.Value).String()
}

// Current is the effective value. Secrets only reveal whether they are set.
func (f *Field) Current() any {
	v := viper.Get(f.Key)
	if !f.Secret {
		return v
	}

	if s, _ := v.(string); s != "" {
		return strings.Repeat("*", 8)
	}
	return ""
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
		Env:         f.Env(),
	})
}

// Default holds every registered configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Secret: k == key.CatalogAPIKey}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogAPIKey, "", "TMDB API key (v3 key or v4 read token).\nThe system keyring is used when empty, see \"crosswatch auth\"")
	register(key.CatalogBaseURL, "https://api.themoviedb.org/3", "Base URL of the catalog API")
	register(key.CatalogImageBaseURL, "https://image.tmdb.org/t/p/w500", "Base URL used to build poster links")
	register(key.CatalogLanguage, "en-US", "Language of titles and descriptions")
	register(key.CatalogRequestsPerSecond, 20, "Upper bound of catalog requests per second")
	register(key.CatalogTimeout, 15, "Catalog request timeout in seconds")
	register(key.SearchCountries, []string{}, "Countries used when none are given on the command line (max 2)")
	register(key.SearchServices, []string{}, "Services used when none are given on the command line")
	register(key.SearchKind, "movie", "Content type to search.\nAvailable options are: movie, series")
	register(key.SearchBatches, 1, "Number of batches fetched by \"crosswatch search\"")
	register(key.SearchRemember, true, "Remember selections for completion and --last")
	register(key.SearchShowSuggestions, true, "Suggest remembered selections in shell completion")
	register(key.CacheEnable, true, "Reuse results of identical searches within one session")
	register(key.TUIViewMode, "grid", "Result layout.\nAvailable options are: grid, list")
	register(key.TUIShowDescription, true, "Show title descriptions in the TUI")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl .Current }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ .Type }}`))
