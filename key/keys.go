// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog API - these keys configure access to the upstream title catalog.
const (
	CatalogAPIKey            = "catalog.api_key"
	CatalogBaseURL           = "catalog.base_url"
	CatalogImageBaseURL      = "catalog.image_base_url"
	CatalogLanguage          = "catalog.language"
	CatalogRequestsPerSecond = "catalog.requests_per_second"
	CatalogTimeout           = "catalog.timeout"
)

// Search defaults - these keys are used when a selection is not given on the command line.
const (
	SearchCountries       = "search.countries"
	SearchServices        = "search.services"
	SearchKind            = "search.kind"
	SearchBatches         = "search.batches"
	SearchRemember        = "search.remember"
	SearchShowSuggestions = "search.show_suggestions"
)

// Session cache.
const (
	CacheEnable = "cache.enable"
)

// Terminal User Interface (TUI).
const (
	TUIViewMode        = "tui.view_mode"
	TUIShowDescription = "tui.show_description"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
