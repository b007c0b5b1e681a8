// Package scene reads scene documents: an equation list and the view it is
// plotted in.
//
// A scene is YAML, or JSON, which is read as YAML:
//
//	equations:
//	  - z^2 + 1
//	  - \frac{1}{z}
//	view:
//	  center: [0, 0]
//	  scale: 4
//	  width: 512
//	  height: 512
//
// Omitted view fields take the values of [Default]. Scenes are read-only.
package scene

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/render"
)

// Sentinel errors.
var (
	ErrRead     = lang.NewError("failed to read scene")
	ErrDecode   = lang.NewError("failed to decode scene")
	ErrView     = lang.NewError("invalid view")
	ErrNotFound = lang.NewError("scene not found")
)

// Scene is an equation list and a view.
type Scene struct {
	Equations []string `json:"equations" yaml:"equations"`
	View      View     `json:"view"      yaml:"view"`
}

// View places the plot in the complex plane. Scale is the height of the
// visible region in plane units.
type View struct {
	Center [2]float64 `json:"center" yaml:"center,flow"`
	Scale  float64    `json:"scale"  yaml:"scale"`
	Width  int        `json:"width"  yaml:"width"`
	Height int        `json:"height" yaml:"height"`
}

// Default returns an empty scene with the default view.
func Default() *Scene {
	v := render.DefaultView

	return &Scene{
		Equations: []string{},
		View: View{
			Center: [2]float64{real(v.Center), imag(v.Center)},
			Scale:  v.Scale,
			Width:  v.Width,
			Height: v.Height,
		},
	}
}

// Render returns v as a [render.View].
func (v View) Render() render.View {
	return render.View{
		Center: complex(v.Center[0], v.Center[1]),
		Scale:  v.Scale,
		Width:  v.Width,
		Height: v.Height,
	}
}

// Validate reports a view that cannot be drawn.
func (v View) Validate() error {
	switch {
	case v.Scale <= 0:
		return ErrView.With(slog.Float64("scale", v.Scale))
	case v.Width <= 0 || v.Height <= 0:
		return ErrView.With(slog.Int("width", v.Width), slog.Int("height", v.Height))
	default:
		return nil
	}
}

// Load decodes a scene from r. Unknown fields are rejected.
func Load(ctx context.Context, r io.Reader) (*Scene, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	var doc document

	if err := yaml.UnmarshalContext(ctx, data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	s, err := doc.scene()
	if err != nil {
		return nil, err
	}

	if err := s.View.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// document is the decoded form of a scene. Pointers tell omitted fields
// from zero values.
type document struct {
	Equations []string `yaml:"equations"`
	View      struct {
		Center []float64 `yaml:"center"`
		Scale  *float64  `yaml:"scale"`
		Width  *int      `yaml:"width"`
		Height *int      `yaml:"height"`
	} `yaml:"view"`
}

func (d *document) scene() (*Scene, error) {
	s := Default()

	if d.Equations != nil {
		s.Equations = d.Equations
	}

	if c := d.View.Center; c != nil {
		if len(c) != 2 {
			return nil, ErrView.With(slog.Int("center_len", len(c)))
		}

		s.View.Center = [2]float64{c[0], c[1]}
	}

	set(&s.View.Scale, d.View.Scale)
	set(&s.View.Width, d.View.Width)
	set(&s.View.Height, d.View.Height)

	return s, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// LoadFile decodes the scene at path.
func LoadFile(ctx context.Context, path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	s, err := Load(ctx, f)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("path", path))
	}

	return s, nil
}
