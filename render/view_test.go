package render

import (
	"math/cmplx"
	"testing"
)

func TestView_At(t *testing.T) {
	v := View{Center: complex(1, -1), Scale: 2, Width: 4, Height: 2}

	tests := []struct {
		x, y int
		want complex128
	}{
		{0, 0, complex(1-1.5, -1+0.5)},
		{3, 1, complex(1+1.5, -1-0.5)},
		{2, 0, complex(1+0.5, -1+0.5)},
	}

	for _, tt := range tests {
		if got := v.At(tt.x, tt.y); cmplx.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%d, %d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if w, h := DefaultView.Size(); w != 512 || h != 512 {
		t.Errorf("DefaultView size: got %dx%d", w, h)
	}
}
