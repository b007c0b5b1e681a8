//go:build gpu

package gpu

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/shader"
)

// Available reports whether GPU rendering was compiled in.
const Available = true

// Device compiles Kage programs with ebiten.
type Device struct{}

// New returns an ebiten device.
func New() render.Device { return Device{} }

// Compile implements [render.Device]. The returned program is a *[Program].
func (Device) Compile(ctx context.Context, source string) (render.Program, error) {
	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	if d := shader.Detect(source); d != shader.Kage {
		return nil, fmt.Errorf("gpu device needs %s source, got %s", shader.Kage, d)
	}

	s, err := ebiten.NewShader([]byte(source))
	if err != nil {
		return nil, err
	}

	return &Program{source: source, shader: s}, nil
}

// Program is a compiled ebiten shader. Release may be called from the
// bridge while the window draws with it.
type Program struct {
	shader *ebiten.Shader
	source string
	mu     sync.Mutex
}

// Source implements [render.Program].
func (p *Program) Source() string { return p.source }

// Release implements [render.Program].
func (p *Program) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}

// Draw fills dst with the program over the plane region of view. The
// resolution uniform is taken from dst. Draw does nothing once the program
// is released.
func (p *Program) Draw(dst *ebiten.Image, view render.View) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shader == nil {
		return
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	dst.DrawRectShader(w, h, p.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			shader.Uniform(shader.Kage, "resolution"): []float32{float32(w), float32(h)},
			shader.Uniform(shader.Kage, "center"): []float32{
				float32(real(view.Center)), float32(imag(view.Center)),
			},
			shader.Uniform(shader.Kage, "scale"): float32(view.Scale),
		},
	})
}
