package render

// View maps the pixels of a surface to the complex plane. Scale is the
// height of the visible region in plane units. View implements [Surface].
type View struct {
	Center complex128
	Scale  float64
	Width  int
	Height int
}

// DefaultView is a 512×512 view of the square centered on the origin with
// side 4.
var DefaultView = View{Scale: 4, Width: 512, Height: 512}

// Size implements [Surface].
func (v View) Size() (int, int) { return v.Width, v.Height }

// At returns the plane coordinate under the center of the pixel at column
// x and row y, counting rows down from the top of the image.
func (v View) At(x, y int) complex128 {
	w, h := float64(v.Width), float64(v.Height)
	fx := float64(x) + 0.5
	fy := h - (float64(y) + 0.5)
	k := v.Scale / h

	return v.Center + complex((fx-w/2)*k, (fy-h/2)*k)
}
