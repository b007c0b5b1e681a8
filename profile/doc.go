// Package profile provides optional runtime profiling for domcol.
//
// Profiling is built on [github.com/pkg/profile] and only compiled in with
// the "pprof" build tag. Without the tag every [Profiler] is a no-op and
// [Modes] is empty.
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Profile files are named after their mode (cpu.pprof, mem.pprof) and can
// be inspected with go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// The CPU renderer spreads rows across worker goroutines, so the block and
// mutex modes are the useful ones when tuning its worker count.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
