package plot

import (
	"context"

	"github.com/ardnew/domcol/render"
)

// Session submits the current equation list to a bridge on demand.
type Session struct {
	bridge    *render.Bridge
	equations func() []string
	opts      []Option
}

// NewSession returns a session that reads the list from equations each
// time it plots.
func NewSession(b *render.Bridge, equations func() []string, opts ...Option) *Session {
	return &Session{bridge: b, equations: equations, opts: opts}
}

// Bridge returns the session's bridge.
func (s *Session) Bridge() *render.Bridge { return s.bridge }

// Plot compiles the current list and submits the program. The channel is
// the bridge's submit result.
func (s *Session) Plot(ctx context.Context) (*Result, <-chan error) {
	var list []string
	if s.equations != nil {
		list = s.equations()
	}

	res := Compile(ctx, list, s.opts...)

	return res, s.bridge.Submit(ctx, res.Source)
}
