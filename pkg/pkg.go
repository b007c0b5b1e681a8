//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command identifier. It names the executable, the help
	// header, and the per-user config and cache directories.
	Name = "domcol"
	// Description is the one-line summary shown in help output.
	Description = "Domain coloring compiler for complex-valued expressions"
	// EnvPrefix prefixes environment variables read by the module.
	EnvPrefix = "DOMCOL_"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
