// Package gpu renders Kage programs with ebiten.
//
// The device and window are compiled only with the gpu build tag, which
// pulls in ebiten and its platform requirements. Without the tag,
// [Available] is false and every entry point returns [ErrUnavailable].
package gpu

import "github.com/ardnew/domcol/lang"

// ErrUnavailable is returned when the binary was built without the gpu
// tag.
var ErrUnavailable = lang.NewError("gpu support not compiled in (build with -tags gpu)")
