// Package cli is the command line interface for domcol.
//
// # Configuration
//
// Flag values are resolved in order from the command line, config.yaml,
// and config.json under the user config directory (for example
// ~/.config/domcol). The YAML file may be flat or nested; nested keys are
// joined with hyphens, and underscores may stand in for hyphens:
//
//	log:
//	  level: debug
//	  pretty: false
//	scene: spiral
//
// is equivalent to
//
//	log_level: debug
//	log_pretty: false
//	scene: spiral
//
// The init command writes the current values of the global flags to
// config.yaml.
//
// # Scenes
//
// A scene named with --scene is found by path, or by name in the
// directories of $DOMCOL_SCENE_PATH, the working directory, and the
// scenes directory under the user config directory.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: json, text
//   - --log-time-layout: a Go time layout or a name such as RFC3339
//   - --log-caller: include the caller's source location
//   - --log-pretty: colorize output on a terminal
//
// # Profiling Options
//
// Only available when built with the pprof tag:
//
//	go build -tags pprof .
//
// The flags are:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread, trace
//   - --pprof-dir: output directory (default ~/.cache/domcol/pprof)
package cli
