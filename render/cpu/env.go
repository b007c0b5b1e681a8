package cpu

import (
	"maps"
	"math/cmplx"
	"sync"

	"github.com/ardnew/domcol/lang"
)

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	envCacheOnce sync.Once
	envCache     map[string]any
)

// makeEnv returns a clone of the environment binding the names generated
// code may reference. Callers may set the plane coordinate in the clone.
func makeEnv() map[string]any {
	envCacheOnce.Do(func() {
		envCache = map[string]any{
			lang.Variable: complex128(0),

			"vec2": func(x, y float64) complex128 { return complex(x, y) },

			"c_add":  func(a, b complex128) complex128 { return a + b },
			"c_sub":  func(a, b complex128) complex128 { return a - b },
			"c_mul":  func(a, b complex128) complex128 { return a * b },
			"c_div":  func(a, b complex128) complex128 { return a / b },
			"c_pow":  pow,
			"c_neg":  func(a complex128) complex128 { return -a },
			"c_conj": cmplx.Conj,
			"c_re":   func(a complex128) complex128 { return complex(real(a), 0) },
			"c_im":   func(a complex128) complex128 { return complex(imag(a), 0) },
			"c_abs":  func(a complex128) complex128 { return complex(cmplx.Abs(a), 0) },
			"c_arg":  func(a complex128) complex128 { return complex(cmplx.Phase(a), 0) },
			"c_exp":  cmplx.Exp,
			"c_log":  cmplx.Log,
			"c_sqrt": cmplx.Sqrt,
			"c_sin":  cmplx.Sin,
			"c_cos":  cmplx.Cos,
			"c_tan":  cmplx.Tan,
			"c_sinh": cmplx.Sinh,
			"c_cosh": cmplx.Cosh,
			"c_tanh": cmplx.Tanh,
		}
	})

	return maps.Clone(envCache)
}

// pow is the principal power with 0^w = 0, matching the shader routine.
func pow(a, b complex128) complex128 {
	if a == 0 {
		return 0
	}

	return cmplx.Exp(b * cmplx.Log(a))
}
