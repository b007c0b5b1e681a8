package cpu

import (
	"image/color"
	"math"
	"math/cmplx"

	"github.com/ardnew/domcol/shader"
)

// RGB is a linear color with channels in [0, 1].
type RGB [3]float64

// DomainColor returns the color of the value w: hue from its phase and
// banded value from its modulus.
func DomainColor(w complex128) RGB {
	hue := fract(math.Atan2(imag(w), real(w))/(2*math.Pi) + 1)
	value := 0.6 + 0.4*fract(math.Log2(math.Max(cmplx.Abs(w), 1e-18)))

	return hsv(hue, 0.85, value)
}

// hsv converts hue, saturation, and value to RGB.
func hsv(h, s, v float64) RGB {
	k := [3]float64{1, 2.0 / 3.0, 1.0 / 3.0}

	var c RGB

	for i := range c {
		p := math.Abs(fract(h+k[i])*6 - 3)
		c[i] = v * mix(1, clamp(p-1, 0, 1), s)
	}

	return c
}

// Blend mixes layers over [shader.Background] with a running mean.
func Blend(layers ...RGB) RGB {
	c := RGB(shader.Background)

	for k, layer := range layers {
		t := 1 / float64(k+1)

		for i := range c {
			c[i] = mix(c[i], layer[i], t)
		}
	}

	return c
}

// RGBA converts c to an opaque 8-bit color. Channels that are not finite
// become zero.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 0xff}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func fract(x float64) float64     { return x - math.Floor(x) }
func mix(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
