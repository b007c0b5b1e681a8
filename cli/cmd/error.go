package cmd

import "github.com/ardnew/domcol/lang"

// Sentinel errors.
var (
	ErrWriteConfig   = lang.NewError("write configuration file")
	ErrFileExists    = lang.NewError("file exists (use --force to overwrite)")
	ErrStrict        = lang.NewError("equations rejected")
	ErrNoGPU         = lang.NewError("plot requires a build with -tags gpu")
	ErrWriteImage    = lang.NewError("write image")
	ErrReadEquations = lang.NewError("read equations")
	ErrCenter        = lang.NewError("invalid center")
)
