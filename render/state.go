package render

// State is the lifecycle state of a [Bridge].
type State int

//go:generate go tool stringer --linecomment --type State,Edge --output state_string.go

const (
	Idle      State = iota // idle
	Compiling              // compiling
	Active                 // active
	Error                  // error
)

// Edge is one half of a pulse.
type Edge int

const (
	Rising  Edge = iota // rising
	Falling             // falling
)
