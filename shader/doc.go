// Package shader lowers validated equations to shader source.
//
// Every value in generated code is a vec2 holding the real and imaginary
// parts of a complex number. An equation at list index i lowers to one
// function, equation_i, from the plane coordinate z to a vec2. [Assemble]
// wraps the functions in a complete program: a header declaring the view
// uniforms, a preamble with the complex library and the domain-coloring
// routine, the functions in list order, and an entry point that blends
// their colors.
//
// Two dialects are emitted. [GLSL] is a GLSL ES 1.00 fragment shader for
// WebGL-style hosts. [Kage] is an ebiten shader.
//
// # Coloring
//
// A value w is colored in HSV with hue fract(atan2(Im w, Re w)/2π + 1),
// saturation 0.85, and value 0.6 + 0.4·fract(log2(max(|w|, 1e-18))), so
// phase sweeps the color wheel and each doubling of the modulus draws a
// band.
//
// # Blending
//
// Layers are blended over a gray background (0.5, 0.5, 0.5) as a running
// mean: the k-th emitted layer (from zero) is mixed in with weight
// 1/(k+1). Every equation contributes equally and a single equation shows
// no gray. An empty list renders only the background.
package shader
