// Package config loads generation configuration. A fresh configuration is
// read for every processed element; nothing is cached across elements.
package config

import (
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// Global constants for the application.
const (
	Application = "recgen"
	Description = "Generates mutable builders and immutable value types from recgen directives"
	WebSite     = "https://github.com/origadmin/recgen"
	UI          = `
 _ __ ___  ___ __ _  ___ _ __
| '__/ _ \/ __/ _` + "`" + ` |/ _ \ '_ \
| | |  __/ (_| (_| |  __/ | | |
|_|  \___|\___\__, |\___|_| |_|
              |___/
`
)

// DefaultFileName is the configuration file looked up next to the directive
// package when no explicit path is given.
const DefaultFileName = "recgen.toml"

// Generation holds the settings consumed while emitting one element's
// artifacts. Instances are read-only and discarded after the element
// completes.
type Generation struct {
	FileIndent  string `toml:"file_indent"`
	FileComment string `toml:"file_comment"`
}

// DefaultGeneration returns the settings used when no configuration file is
// present.
func DefaultGeneration() *Generation {
	return &Generation{FileIndent: "\t"}
}

// Loader reads the generation configuration. Load re-reads the file on every
// call so each element observes the file as it is at that moment.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the given file path. An empty path always
// yields defaults.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load returns a fresh configuration. A missing file yields defaults; a
// malformed file yields defaults and a warning.
func (l *Loader) Load() *Generation {
	gen := DefaultGeneration()
	if l == nil || l.Path == "" {
		return gen
	}
	if _, err := toml.DecodeFile(l.Path, gen); err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No configuration file, using defaults", "path", l.Path)
		} else {
			slog.Warn("Could not read configuration file, using defaults", "path", l.Path, "error", err)
		}
		return DefaultGeneration()
	}
	if gen.FileIndent == "" {
		gen.FileIndent = "\t"
	}
	return gen
}
