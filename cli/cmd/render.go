package cmd

import (
	"context"
	"image/png"
	"log/slog"

	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/plot"
	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/render/cpu"
	"github.com/ardnew/domcol/shader"
)

// Render draws the input equations with the software renderer and writes a
// PNG.
type Render struct {
	View    viewFlags `embed:""`
	Out     string    `default:"domcol.png" help:"Output PNG file or '-' for stdout." short:"o" type:"path"`
	Workers int       `default:"0"          help:"Render goroutines (0 for one per CPU)."`
	Strict  bool      `help:"Fail if any equation is rejected."`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sc, err := input(ctx, r.Equations)
	if err != nil {
		return err
	}

	sv, err := r.View.apply(sc.View)
	if err != nil {
		return err
	}

	view := sv.Render()
	logger := log.Default()

	b := render.NewBridge(
		cpu.New(cpu.WithLogger(logger), cpu.WithWorkers(r.Workers)),
		render.WithLogger(logger),
	)
	defer b.Close()

	// The image is drawn from the program current at the falling edge.
	drawn := make(chan render.Program, 1)
	defer b.Pulse().OnEdge(func(e render.Edge) {
		if e != render.Falling {
			return
		}

		select {
		case drawn <- b.Program():
		default:
		}
	})()

	if err := b.Attach(view); err != nil {
		return err
	}

	session := plot.NewSession(b,
		func() []string { return sc.Equations },
		plot.WithDialect(shader.GLSL),
		plot.WithLogger(logger),
	)

	res, submitted := session.Plot(ctx)
	if err := report(ctx, res); err != nil && r.Strict {
		return ErrStrict.Wrap(err)
	}

	if err := <-submitted; err != nil {
		return err
	}

	var prog render.Program

	select {
	case prog = <-drawn:
	case <-ctx.Done():
		return context.Cause(ctx)
	}

	cp, ok := prog.(*cpu.Program)
	if !ok {
		return ErrWriteImage.With(slog.String("issue", "no program to draw"))
	}

	img, err := cp.Render(ctx, view)
	if err != nil {
		return err
	}

	w, err := output(r.Out)
	if err != nil {
		return ErrWriteImage.Wrap(err).With(slog.String("file", r.Out))
	}
	defer w.Close()

	if err := png.Encode(w, img); err != nil {
		return ErrWriteImage.Wrap(err).With(slog.String("file", r.Out))
	}

	log.InfoContext(ctx, "rendered",
		slog.String("file", r.Out),
		slog.Int("width", view.Width),
		slog.Int("height", view.Height),
		slog.Int("layers", len(cp.Indices())),
	)

	return nil
}
