//go:build gpu

package gpu

import (
	"context"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ardnew/domcol/render"
)

// Run opens a window showing the active program of b over view and blocks
// until the window closes or ctx ends. The window is attached to b as its
// surface, so a pending submission starts compiling once it opens. Each
// pulse of b redraws it.
//
// Arrow keys pan, and = and - zoom. Panning and zooming change uniforms
// only; nothing is recompiled.
func Run(ctx context.Context, b *render.Bridge, view render.View, title string) error {
	g := &game{ctx: ctx, bridge: b, view: view}
	g.dirty.Store(true)

	cancel := b.Pulse().OnEdge(func(e render.Edge) {
		if e == render.Falling {
			g.dirty.Store(true)
		}
	})
	defer cancel()

	if err := b.Attach(view); err != nil {
		return err
	}
	defer b.Detach()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(view.Width, view.Height)
	ebiten.SetTPS(60)

	return ebiten.RunGame(g)
}

type game struct {
	ctx    context.Context
	bridge *render.Bridge
	canvas *ebiten.Image
	view   render.View
	dirty  atomic.Bool
}

// Per key press, pan by a fraction of the visible height and zoom by a
// factor.
const (
	panStep  = 0.1
	zoomStep = 1.25
)

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	step := g.view.Scale * panStep
	moves := map[ebiten.Key]complex128{
		ebiten.KeyArrowLeft:  complex(-step, 0),
		ebiten.KeyArrowRight: complex(step, 0),
		ebiten.KeyArrowUp:    complex(0, step),
		ebiten.KeyArrowDown:  complex(0, -step),
	}

	for key, d := range moves {
		if inpututil.IsKeyJustPressed(key) {
			g.view.Center += d
			g.dirty.Store(true)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.view.Scale /= zoomStep
		g.dirty.Store(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.view.Scale *= zoomStep
		g.dirty.Store(true)
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.view.Width, g.view.Height)
	}

	if g.dirty.Swap(false) {
		if p, ok := g.bridge.Program().(*Program); ok {
			p.Draw(g.canvas, g.view)
		}
	}

	screen.DrawImage(g.canvas, nil)
}

func (g *game) Layout(int, int) (int, int) {
	return g.view.Width, g.view.Height
}
