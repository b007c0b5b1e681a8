package render

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ardnew/domcol/log"
)

// Option configures a [Bridge].
type Option func(*Bridge)

// WithLogger sets the logger that receives state transitions at debug
// level.
func WithLogger(logger log.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithPulse makes the bridge fire p instead of a pulse of its own.
func WithPulse(p *Pulse) Option {
	return func(b *Bridge) {
		if p != nil {
			b.pulse = p
		}
	}
}

// Bridge compiles submitted programs on a [Device] and announces each new
// active program with its [Pulse]. It is safe for concurrent use.
type Bridge struct {
	device Device
	pulse  *Pulse
	logger log.Logger

	mu       sync.Mutex
	surface  Surface
	program  Program
	failure  *DeviceCompileError
	pending  *request
	inflight *request
	cancel   context.CancelCauseFunc
	gen      uint64
	state    State
	closed   bool

	wg sync.WaitGroup
}

// request is one submission. Its channel receives exactly one value.
type request struct {
	ctx    context.Context
	ch     chan error
	source string
	once   sync.Once
}

func newRequest(ctx context.Context, source string) *request {
	return &request{ctx: ctx, source: source, ch: make(chan error, 1)}
}

func (r *request) resolve(err error) {
	r.once.Do(func() {
		r.ch <- err
		close(r.ch)
	})
}

// NewBridge returns an idle bridge compiling on device.
func NewBridge(device Device, opts ...Option) *Bridge {
	b := &Bridge{device: device, pulse: new(Pulse)}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// Pulse returns the invalidation pulse fired on each transition to
// [Active].
func (b *Bridge) Pulse() *Pulse { return b.pulse }

// State returns the current state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// Diagnostics returns the device output of the last failed compile while
// the bridge is in [Error], and the empty string otherwise.
func (b *Bridge) Diagnostics() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Error || b.failure == nil {
		return ""
	}

	return b.failure.Diagnostics
}

// Err returns the last compile failure while the bridge is in [Error].
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Error || b.failure == nil {
		return nil
	}

	return b.failure
}

// Program returns the program used for drawing, or nil. A failed compile
// leaves the previous program in place.
func (b *Bridge) Program() Program {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.program
}

// Surface returns the attached surface, or nil.
func (b *Bridge) Surface() Surface {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.surface
}

// Submit starts compiling source, superseding any outstanding compile.
// The returned channel receives exactly one value and is then closed: nil
// once the program is active and its pulse has fired, a
// *[DeviceCompileError] if the device rejected it, [ErrSuperseded] if a
// later submission replaced it first, or [ErrClosed].
//
// Without an attached surface the source is held until [Bridge.Attach].
func (b *Bridge) Submit(ctx context.Context, source string) <-chan error {
	req := newRequest(ctx, source)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		req.resolve(ErrClosed)

		return req.ch
	}

	b.supersedeLocked(ErrSuperseded)

	if b.surface == nil {
		b.pending = req
		b.logger.DebugContext(ctx, "submission pending",
			slog.Uint64("generation", b.gen),
			slog.String("reason", ErrNoSurface.Error()),
		)

		return req.ch
	}

	b.startLocked(req)

	return req.ch
}

// Attach sets the surface programs are drawn on and starts any pending
// compile. It returns [ErrNoSurface] if s has no drawable area.
func (b *Bridge) Attach(s Surface) error {
	if !validSurface(s) {
		return ErrNoSurface
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	b.surface = s

	if req := b.pending; req != nil {
		b.pending = nil
		b.startLocked(req)
	}

	return nil
}

// Detach removes the surface, releases the active program, and returns to
// [Idle]. The outstanding compile, or else the released program's source,
// is held and recompiled by the next [Bridge.Attach].
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surface == nil {
		return
	}

	b.surface = nil

	switch {
	case b.inflight != nil:
		req := b.inflight
		b.cancel(ErrNoSurface)
		b.gen++
		b.inflight, b.cancel = nil, nil
		b.pending = req
	case b.program != nil && b.pending == nil:
		b.pending = newRequest(context.Background(), b.program.Source())
	}

	if b.program != nil {
		b.program.Release()
		b.program = nil
	}

	b.failure = nil
	b.setStateLocked(context.Background(), Idle)
}

// Close releases the active program and stops the bridge. Later submits
// fail with [ErrClosed]. Close waits for outstanding device work.
func (b *Bridge) Close() error {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()

		return nil
	}

	b.closed = true
	b.supersedeLocked(ErrClosed)

	if b.program != nil {
		b.program.Release()
		b.program = nil
	}

	b.surface = nil
	b.setStateLocked(context.Background(), Idle)
	b.mu.Unlock()

	b.wg.Wait()

	return nil
}

// supersedeLocked abandons the pending and in-flight requests. The
// in-flight one is resolved by its compile goroutine.
func (b *Bridge) supersedeLocked(cause error) {
	b.gen++

	if b.pending != nil {
		b.pending.resolve(cause)
		b.pending = nil
	}

	if b.cancel != nil {
		b.cancel(cause)
		b.cancel = nil
	}

	b.inflight = nil
}

func (b *Bridge) startLocked(req *request) {
	ctx, cancel := context.WithCancelCause(req.ctx)

	b.inflight, b.cancel = req, cancel
	gen := b.gen

	b.setStateLocked(req.ctx, Compiling)

	b.wg.Add(1)

	go func() {
		defer b.wg.Done()
		defer cancel(nil)

		prog, err := b.device.Compile(ctx, req.source)
		b.finish(ctx, gen, req, prog, err)
	}()
}

func (b *Bridge) finish(ctx context.Context, gen uint64, req *request, prog Program, err error) {
	b.mu.Lock()

	if gen != b.gen || b.inflight != req {
		closed := b.closed
		// A request moved back to pending by Detach is resolved by its
		// next attempt.
		live := b.pending == req || b.inflight == req
		b.mu.Unlock()

		if prog != nil {
			prog.Release()
		}

		b.logger.DebugContext(req.ctx, "discarded stale compile", slog.Uint64("generation", gen))

		switch {
		case live:
		case closed:
			req.resolve(ErrClosed)
		default:
			req.resolve(ErrSuperseded)
		}

		return
	}

	b.inflight, b.cancel = nil, nil

	if err != nil {
		if prog != nil {
			prog.Release()
		}

		// The caller gave up; this is not a device failure.
		if ctx.Err() != nil {
			b.setStateLocked(req.ctx, b.restingLocked())
			b.mu.Unlock()
			req.resolve(context.Cause(ctx))

			return
		}

		var failure *DeviceCompileError
		if !errors.As(err, &failure) {
			failure = &DeviceCompileError{Err: err, Diagnostics: err.Error()}
		}

		b.failure = failure
		b.setStateLocked(req.ctx, Error)
		b.logger.DebugContext(req.ctx, "compile failed", slog.Any("error", failure))
		b.mu.Unlock()

		req.resolve(failure)

		return
	}

	old := b.program
	b.program = prog
	b.failure = nil
	b.setStateLocked(req.ctx, Active)
	b.mu.Unlock()

	if old != nil {
		old.Release()
	}

	seq := b.pulse.Fire()
	b.logger.DebugContext(req.ctx, "pulse", slog.Uint64("seq", seq))

	req.resolve(nil)
}

// restingLocked returns the state to settle in when a compile ends
// without a result.
func (b *Bridge) restingLocked() State {
	switch {
	case b.failure != nil:
		return Error
	case b.program != nil:
		return Active
	default:
		return Idle
	}
}

func (b *Bridge) setStateLocked(ctx context.Context, s State) {
	if b.state == s {
		return
	}

	b.logger.DebugContext(ctx, "bridge transition",
		slog.String("from", b.state.String()),
		slog.String("to", s.String()),
		slog.Uint64("generation", b.gen),
	)

	b.state = s
}
