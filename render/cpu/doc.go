// Package cpu is a software [render.Device].
//
// It reads the equation functions out of a generated program and compiles
// each function body with expr-lang against an environment that binds the
// complex library routines to math/cmplx. Rendering evaluates every
// function at every pixel and colors and blends the results the same way
// the generated entry point does.
//
// The device accepts programs in either shader dialect. It is slower than
// a GPU by orders of magnitude, but needs no display and gives exact
// float64 results, which makes it the device for tests, headless image
// export, and terminal previews.
package cpu
