package edit

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/render/cpu"
)

// upperHalf is drawn with the upper pixel as foreground and the lower pixel
// as background, so each terminal cell shows two rows.
const upperHalf = "▀"

// Preview dimensions in terminal cells.
const (
	maxPreviewCols = 64
	previewRows    = 16
)

// pulseMsg reports a completed pulse of the bridge.
type pulseMsg struct{ seq uint64 }

// previewMsg carries a freshly drawn preview.
type previewMsg struct {
	text string
	err  error
}

// waitPulse returns a command that delivers the first pulse numbered after
// seq. It delivers nothing once ctx ends.
func waitPulse(ctx context.Context, p *render.Pulse, seq uint64) tea.Cmd {
	return func() tea.Msg {
		next, err := p.Wait(ctx, seq)
		if err != nil {
			return nil
		}

		return pulseMsg{seq: next}
	}
}

// drawPreview returns a command that renders the bridge's program into
// view.
func drawPreview(ctx context.Context, b *render.Bridge, view render.View) tea.Cmd {
	return func() tea.Msg {
		prog, ok := b.Program().(*cpu.Program)
		if !ok {
			return previewMsg{err: ErrNoProgram}
		}

		img, err := prog.Render(ctx, view)
		if err != nil {
			return previewMsg{err: err}
		}

		return previewMsg{text: halfBlocks(img)}
	}
}

// previewView fits base to a preview of cols terminal columns.
func previewView(base render.View, cols int) render.View {
	base.Width = max(1, min(cols, maxPreviewCols))
	base.Height = 2 * previewRows

	return base
}

// halfBlocks draws img as rows of half-block cells, two pixel rows per line.
func halfBlocks(img *image.RGBA) string {
	r := img.Bounds()

	var b strings.Builder

	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		if y > r.Min.Y {
			b.WriteByte('\n')
		}

		for x := r.Min.X; x < r.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.RGBAAt(x, y)))
			if y+1 < r.Max.Y {
				style = style.Background(hexColor(img.RGBAAt(x, y+1)))
			}

			b.WriteString(style.Render(upperHalf))
		}
	}

	return b.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
