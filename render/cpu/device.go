package cpu

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/shader"
)

// Option configures a [Device].
type Option func(*Device)

// WithLogger sets the logger for trace records.
func WithLogger(logger log.Logger) Option {
	return func(d *Device) { d.logger = logger }
}

// WithWorkers sets the number of goroutines that render rows. Values
// below one select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Device) { d.workers = n }
}

// Device compiles generated programs for software rendering.
type Device struct {
	logger  log.Logger
	workers int
}

var _ render.Device = (*Device)(nil)

// New returns a software device.
func New(opts ...Option) *Device {
	d := &Device{}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if d.workers < 1 {
		d.workers = runtime.GOMAXPROCS(0)
	}

	return d
}

var entryPoints = map[shader.Dialect]string{
	shader.GLSL: "void main() {",
	shader.Kage: "func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {",
}

// Compile implements [render.Device]. The returned program is a *[Program].
// Every body that fails to compile is listed in the error, one per line.
func (d *Device) Compile(ctx context.Context, source string) (render.Program, error) {
	dialect := shader.Detect(source)

	if !strings.Contains(source, entryPoints[dialect]) {
		return nil, fmt.Errorf("%s program has no entry point", dialect)
	}

	env := makeEnv()
	functions := shader.Functions(source)
	layers := make([]layer, 0, len(functions))

	var diags []string

	for _, f := range functions {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		program, err := expr.Compile(f.Body, expr.Env(env))
		if err != nil {
			diags = append(diags, f.Name()+": "+err.Error())

			continue
		}

		layers = append(layers, layer{index: f.Index, program: program})
	}

	if len(diags) > 0 {
		return nil, errors.New(strings.Join(diags, "\n"))
	}

	d.logger.TraceContext(ctx, "compiled program",
		slog.String("dialect", dialect.String()),
		slog.Int("layers", len(layers)),
	)

	return &Program{source: source, layers: layers, workers: d.workers}, nil
}

type layer struct {
	program *vm.Program
	index   int
}

// Program is a compiled program. It is safe for concurrent use until
// released.
type Program struct {
	source   string
	layers   []layer
	workers  int
	released atomic.Bool
}

// ErrReleased is returned by a released program.
var ErrReleased = lang.NewError("program released")

// Source implements [render.Program].
func (p *Program) Source() string { return p.source }

// Release implements [render.Program].
func (p *Program) Release() { p.released.Store(true) }

// Indices returns the equation index of each layer, in blend order.
func (p *Program) Indices() []int {
	out := make([]int, len(p.layers))
	for i, l := range p.layers {
		out[i] = l.index
	}

	return out
}

// Eval evaluates the function of the equation at index at z.
func (p *Program) Eval(index int, z complex128) (complex128, error) {
	if p.released.Load() {
		return 0, ErrReleased
	}

	for _, l := range p.layers {
		if l.index == index {
			var machine vm.VM

			return eval(&machine, l.program, makeEnv(), z)
		}
	}

	return 0, fmt.Errorf("no function %s", shader.FunctionName(index))
}

func eval(machine *vm.VM, program *vm.Program, env map[string]any, z complex128) (complex128, error) {
	env[lang.Variable] = z

	out, err := machine.Run(program, env)
	if err != nil {
		return 0, err
	}

	w, ok := out.(complex128)
	if !ok {
		return 0, fmt.Errorf("function returned %T, want complex128", out)
	}

	return w, nil
}

// Color returns the blended color of the plane coordinate z.
func (p *Program) Color(z complex128) (RGB, error) {
	var machine vm.VM

	return p.color(&machine, makeEnv(), z)
}

func (p *Program) color(machine *vm.VM, env map[string]any, z complex128) (RGB, error) {
	colors := make([]RGB, len(p.layers))

	for i, l := range p.layers {
		w, err := eval(machine, l.program, env, z)
		if err != nil {
			return RGB{}, err
		}

		colors[i] = DomainColor(w)
	}

	return Blend(colors...), nil
}

// Render draws the program over view. Rows are split among the device's
// workers.
func (p *Program) Render(ctx context.Context, view render.View) (*image.RGBA, error) {
	if p.released.Load() {
		return nil, ErrReleased
	}

	img := image.NewRGBA(image.Rect(0, 0, view.Width, view.Height))

	var (
		wg   sync.WaitGroup
		next atomic.Int64
		errs = make([]error, p.workers)
	)

	for w := range p.workers {
		wg.Go(func() {
			var machine vm.VM

			env := makeEnv()

			for {
				y := int(next.Add(1) - 1)
				if y >= view.Height {
					return
				}

				if err := context.Cause(ctx); err != nil {
					errs[w] = err

					return
				}

				for x := range view.Width {
					c, err := p.color(&machine, env, view.At(x, y))
					if err != nil {
						errs[w] = fmt.Errorf("pixel (%d, %d): %w", x, y, err)

						return
					}

					img.SetRGBA(x, y, c.RGBA())
				}
			}
		})
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return img, nil
}
