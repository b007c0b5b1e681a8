package cmd

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ardnew/domcol/scene"
)

// viewFlags override the view of the input scene. Zero values leave the
// scene's view alone.
type viewFlags struct {
	Center string  `help:"View center as a complex number, such as -0.5+0.25i." placeholder:"COMPLEX"`
	Scale  float64 `help:"Height of the visible region in plane units."`
	Width  int     `help:"Width in pixels."                                      short:"W"`
	Height int     `help:"Height in pixels."                                     short:"H"`
}

func (f viewFlags) apply(v scene.View) (scene.View, error) {
	if f.Center != "" {
		c, err := strconv.ParseComplex(f.Center, 128)
		if err != nil {
			return v, ErrCenter.Wrap(err).With(slog.String("center", f.Center))
		}

		v.Center = [2]float64{real(c), imag(c)}
	}

	if f.Scale != 0 {
		v.Scale = f.Scale
	}

	if f.Width != 0 {
		v.Width = f.Width
	}

	if f.Height != 0 {
		v.Height = f.Height
	}

	return v, v.Validate()
}

// output opens path for writing, or returns stdout for "-".
func output(path string) (io.WriteCloser, error) {
	if path == stdinSource {
		return nopCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
