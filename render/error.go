package render

import (
	"log/slog"

	"github.com/ardnew/domcol/lang"
)

// Sentinel errors.
var (
	ErrDeviceCompile = lang.NewError("device compile error")
	ErrSuperseded    = lang.NewError("superseded by a newer submission")
	ErrClosed        = lang.NewError("bridge closed")
	ErrNoSurface     = lang.NewError("no rendering surface")
)

// DeviceCompileError reports a program the device rejected. Diagnostics
// holds the device's output verbatim. It applies to the whole program.
type DeviceCompileError struct {
	Err         error
	Diagnostics string
}

func (e *DeviceCompileError) Error() string {
	return ErrDeviceCompile.Error() + ": " + e.Diagnostics
}

// Unwrap returns [ErrDeviceCompile] and the device's error.
func (e *DeviceCompileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDeviceCompile}
	}

	return []error{ErrDeviceCompile, e.Err}
}

func (e *DeviceCompileError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrDeviceCompile.Error()),
		slog.String("diagnostics", e.Diagnostics),
	)
}
