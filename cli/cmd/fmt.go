package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/plot"
)

// Fmt prints the parsed form of the input equations. Rejected equations are
// logged and skipped, and make the command fail once the rest are printed.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as normalized infix notation (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
}

// parsed returns the ASTs of the input equations that compile.
func parsed(ctx context.Context, args []string, format string) ([]*lang.AST, error) {
	sc, err := input(ctx, args)
	if err != nil {
		return nil, err
	}

	res := plot.Compile(ctx, sc.Equations, plot.WithLogger(log.Default()))

	asts := make([]*lang.AST, 0, len(res.Equations))
	for _, eq := range res.Valid() {
		asts = append(asts, eq.AST)
	}

	if err := report(ctx, res); err != nil {
		return asts, ErrStrict.Wrap(err).With(slog.String("format", format))
	}

	return asts, nil
}

// Native prints each equation in infix notation with minimal parentheses.
type Native struct {
	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) error {
	return f.write(ctx, os.Stdout)
}

func (f *Native) write(ctx context.Context, w io.Writer) error {
	asts, err := parsed(ctx, f.Equations, "native")

	for _, ast := range asts {
		if _, werr := fmt.Fprintln(w, ast); werr != nil {
			return werr
		}
	}

	return err
}

// JSON prints the equations as a JSON array.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.write(ctx, os.Stdout)
}

func (j *JSON) write(ctx context.Context, w io.Writer) error {
	asts, err := parsed(ctx, j.Equations, "json")

	if werr := lang.FormatJSON(ctx, w, j.Indent, asts...); werr != nil {
		return werr
	}

	return err
}

// YAML prints the equations as a YAML sequence.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.write(ctx, os.Stdout)
}

func (y *YAML) write(ctx context.Context, w io.Writer) error {
	asts, err := parsed(ctx, y.Equations, "yaml")

	if werr := lang.FormatYAML(ctx, w, y.Indent, asts...); werr != nil {
		return werr
	}

	return err
}

// AST prints each equation as an indented tree.
type AST struct {
	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	return a.write(ctx, os.Stdout)
}

func (a *AST) write(ctx context.Context, w io.Writer) error {
	asts, err := parsed(ctx, a.Equations, "ast")

	for _, ast := range asts {
		if werr := ast.Print(w); werr != nil {
			return werr
		}
	}

	return err
}
