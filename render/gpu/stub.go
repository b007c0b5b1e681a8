//go:build !gpu

package gpu

import (
	"context"

	"github.com/ardnew/domcol/render"
)

// Available reports whether GPU rendering was compiled in.
const Available = false

// New returns a device whose compiles fail with [ErrUnavailable].
func New() render.Device {
	return render.DeviceFunc(func(context.Context, string) (render.Program, error) {
		return nil, ErrUnavailable
	})
}

// Run returns [ErrUnavailable].
func Run(context.Context, *render.Bridge, render.View, string) error {
	return ErrUnavailable
}
