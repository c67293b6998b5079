package app

import (
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/voltura/pkg/log"
)

// NamedFlagSetOptions is implemented by the options struct of a command.
// Flags are grouped into named sets for the help output.
type NamedFlagSetOptions interface {
	// Flags returns the flags grouped by section.
	Flags() cliflag.NamedFlagSets

	// Complete fills defaults that depend on other options.
	Complete() error

	// Validate checks the completed options.
	Validate() error
}

// LogOptionsProvider is implemented by options that configure the global
// logger. The logger is initialised right after validation.
type LogOptionsProvider interface {
	LogOptions() *log.Options
}
