// Package cmd implements the domcol subcommands.
//
// Every command works on the same input: the scene named by --scene (or the
// default scene), followed by equations read from --file sources, one per
// line, followed by equations given as arguments.
package cmd

// Names of kong variables set by the cli package.
var (
	// CacheIdentifier holds the path to the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier holds the path to the YAML configuration file.
	ConfigIdentifier = "config"

	// SceneIdentifier holds the path to the user's scene directory.
	SceneIdentifier = "scenes"
)
