package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/plot"
	"github.com/ardnew/domcol/shader"
)

// Compile prints the shader program generated from the input equations.
type Compile struct {
	Dialect shader.Dialect `default:"glsl" help:"Shader dialect (glsl, kage)." short:"d"`
	Out     string         `default:"-"    help:"Output file or '-' for stdout." short:"o" type:"path"`
	Strict  bool           `help:"Fail if any equation is rejected."`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sc, err := input(ctx, c.Equations)
	if err != nil {
		return err
	}

	res := plot.Compile(ctx, sc.Equations,
		plot.WithDialect(c.Dialect),
		plot.WithLogger(log.Default()),
	)

	if err := report(ctx, res); err != nil && c.Strict {
		return ErrStrict.Wrap(err)
	}

	w, err := output(c.Out)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := io.WriteString(w, res.Source); err != nil {
		return err
	}

	log.DebugContext(ctx, "compiled",
		slog.String("dialect", c.Dialect.String()),
		slog.Int("equations", len(res.Equations)),
		slog.Int("functions", len(res.Functions())),
	)

	return nil
}
