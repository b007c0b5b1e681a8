package edit

import "github.com/ardnew/domcol/lang"

// Sentinel errors.
var (
	ErrNoProgram = lang.NewError("no program to preview")
	ErrEditor    = lang.NewError("external editor failed")
)
