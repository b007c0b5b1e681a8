package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/pkg"
	"github.com/ardnew/domcol/plot"
	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/render/gpu"
	"github.com/ardnew/domcol/shader"
)

// Plot opens a window that draws the input equations on the GPU.
type Plot struct {
	View   viewFlags `embed:""`
	Strict bool      `help:"Fail if any equation is rejected."`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the plot command.
func (p *Plot) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !gpu.Available {
		return ErrNoGPU
	}

	sc, err := input(ctx, p.Equations)
	if err != nil {
		return err
	}

	sv, err := p.View.apply(sc.View)
	if err != nil {
		return err
	}

	logger := log.Default()

	b := render.NewBridge(gpu.New(), render.WithLogger(logger))
	defer b.Close()

	session := plot.NewSession(b,
		func() []string { return sc.Equations },
		plot.WithDialect(shader.Kage),
		plot.WithLogger(logger),
	)

	// The submission stays pending until the window attaches as the surface.
	res, submitted := session.Plot(ctx)
	if err := report(ctx, res); err != nil && p.Strict {
		return ErrStrict.Wrap(err)
	}

	go func() {
		if err := <-submitted; err != nil && !errors.Is(err, render.ErrClosed) {
			log.ErrorContext(ctx, "plot failed",
				slog.Any("error", err),
				slog.String("diagnostics", b.Diagnostics()),
			)
		}
	}()

	return gpu.Run(ctx, b, sv.Render(), pkg.Name)
}
