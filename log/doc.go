// Package log wraps [log/slog] with a small leveled API, functional
// configuration, and colorized handlers for terminals.
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("program compiled", slog.Int("functions", 2))
//
// Methods take [slog.Attr] values rather than alternating key/value
// arguments. Every level has a Context variant; the plain variant uses
// [DefaultContextProvider].
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]. Trace is below slog's Debug and is used by the compiler
// stages for per-token and per-node detail.
//
// With [WithPretty] enabled (the default), records are styled with lipgloss.
// Color is dropped automatically when the output is not a terminal.
//
// The package-level functions write through a default logger on stderr that
// the command line reconfigures with [Config].
package log
