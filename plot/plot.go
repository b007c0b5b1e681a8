package plot

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/shader"
)

// Option configures [Compile].
type Option func(*config)

type config struct {
	logger  log.Logger
	dialect shader.Dialect
	cache   bool
}

// WithDialect selects the dialect of the generated program. The default
// is [shader.GLSL].
func WithDialect(d shader.Dialect) Option {
	return func(c *config) { c.dialect = d }
}

// WithLogger sets the logger for trace and debug records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCache enables or disables the lowering cache. It is enabled by
// default.
func WithCache(enabled bool) Option {
	return func(c *config) { c.cache = enabled }
}

func makeConfig(opts ...Option) *config {
	c := &config{dialect: shader.GLSL, cache: true}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Equation is the outcome of compiling one entry of the list.
type Equation struct {
	// AST is the validated tree, or nil if Err is set.
	AST *lang.AST
	// Err is the first lex, parse, validation, or codegen error.
	Err error
	// Source is the text of the entry.
	Source string
	// Function is the generated function, empty if Err is set.
	Function shader.Function
	Index    int
}

// OK reports whether the equation compiled.
func (e Equation) OK() bool { return e.Err == nil }

// Result is the outcome of compiling a list.
type Result struct {
	// Source is the complete generated program.
	Source    string
	Equations []Equation
	Dialect   shader.Dialect
}

// Errors joins the errors of every failed equation in list order, or
// returns nil if all compiled.
func (r *Result) Errors() error {
	var errs []error

	for _, e := range r.Equations {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}

	return errors.Join(errs...)
}

// Valid returns the equations that compiled, in list order.
func (r *Result) Valid() []Equation {
	var out []Equation

	for _, e := range r.Equations {
		if e.OK() {
			out = append(out, e)
		}
	}

	return out
}

// Functions returns the functions of the program in blend order.
func (r *Result) Functions() []shader.Function {
	var out []shader.Function

	for _, e := range r.Valid() {
		out = append(out, e.Function)
	}

	return out
}

// Compile compiles a snapshot of equations. It never fails as a whole:
// failures are scoped to their equations, and the program is generated
// from the rest.
func Compile(ctx context.Context, equations []string, opts ...Option) *Result {
	cfg := makeConfig(opts...)
	snapshot := slices.Clone(equations)

	res := &Result{
		Equations: make([]Equation, len(snapshot)),
		Dialect:   cfg.dialect,
	}

	for i, text := range snapshot {
		eq := Equation{Index: i, Source: text}
		e := cfg.lower(ctx, text)

		if e.err != nil {
			eq.Err = atIndex(e.err, i)

			cfg.logger.TraceContext(ctx, "equation failed", slog.Any("error", eq.Err))
		} else {
			// Cached trees are shared; each equation gets its own.
			eq.AST = e.ast.Clone()
			eq.AST.Index = i
			eq.Function = shader.Function{Index: i, Body: e.body}
		}

		res.Equations[i] = eq
	}

	res.Source = shader.Assemble(res.Functions(), cfg.dialect)

	cfg.logger.DebugContext(ctx, "compiled equations",
		slog.String("dialect", cfg.dialect.String()),
		slog.Int("total", len(snapshot)),
		slog.Int("valid", len(res.Valid())),
	)

	return res
}

// atIndex attributes err to the equation at index.
func atIndex(err error, index int) error {
	var ce *shader.CodegenError
	if errors.As(err, &ce) {
		c := *ce
		c.Index = index

		return &c
	}

	return lang.AtIndex(err, index)
}
