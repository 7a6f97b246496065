// Package constant holds the application identity and build metadata.
package constant

import _ "embed"

const (
	// Crosswatch names the config file, the directories and the env prefix.
	Crosswatch = "crosswatch"

	Version = "0.3.0"

	// Repository is the GitHub repository releases are published to.
	Repository = "crosswatch-cli/crosswatch"

	// UserAgent is sent with every catalog request.
	UserAgent = Crosswatch + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Values of runtime.GOOS with platform specific behavior.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

//go:embed ascii.txt
var AsciiArtLogo string
