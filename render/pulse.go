package render

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
)

// Pulse is a one-shot invalidation signal. Each [Pulse.Fire] delivers a
// [Rising] edge and then a [Falling] edge to every subscriber, and no two
// pulses overlap. The zero value is ready to use.
type Pulse struct {
	// fire serializes pulses.
	fire sync.Mutex

	mu     sync.Mutex
	subs   []subscriber
	nextID uint64
	seq    uint64
	done   uint64
	notify chan struct{}

	active atomic.Bool
}

type subscriber struct {
	fn func(Edge)
	id uint64
}

// OnEdge registers fn to receive every edge of every later pulse. Calling
// the returned function unsubscribes it. fn runs on the goroutine that
// fired the pulse and must not call [Pulse.Fire].
func (p *Pulse) OnEdge(fn func(Edge)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)

				return
			}
		}
	}
}

// Fire emits one pulse and returns its sequence number. Sequence numbers
// start at 1 and increase by one per pulse.
func (p *Pulse) Fire() uint64 {
	p.fire.Lock()
	defer p.fire.Unlock()

	p.mu.Lock()
	p.seq++
	seq := p.seq
	subs := slices.Clone(p.subs)
	p.mu.Unlock()

	p.active.Store(true)

	for _, s := range subs {
		s.fn(Rising)
	}

	p.active.Store(false)

	for _, s := range subs {
		s.fn(Falling)
	}

	p.mu.Lock()
	p.done = seq

	if p.notify != nil {
		close(p.notify)
		p.notify = nil
	}
	p.mu.Unlock()

	return seq
}

// Seq returns the sequence number of the latest pulse, or zero if none has
// fired.
func (p *Pulse) Seq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.seq
}

// Active reports whether a pulse is between its rising and falling edges.
func (p *Pulse) Active() bool { return p.active.Load() }

// Wait blocks until a pulse numbered greater than after has delivered both
// edges, and returns the latest completed sequence number. It returns the
// context's cause if ctx ends first.
func (p *Pulse) Wait(ctx context.Context, after uint64) (uint64, error) {
	for {
		p.mu.Lock()
		if p.done > after {
			done := p.done
			p.mu.Unlock()

			return done, nil
		}

		if p.notify == nil {
			p.notify = make(chan struct{})
		}

		ch := p.notify
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return 0, context.Cause(ctx)
		}
	}
}
