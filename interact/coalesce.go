package interact

import (
	"time"
)

// DefaultFrameInterval bounds coalesced updates to about 60 per second.
const DefaultFrameInterval = time.Second / 60

// FrameRequester asks the host for another frame.
type FrameRequester interface {
	RequestFrame()
}

// FrameFunc adapts a function to FrameRequester.
type FrameFunc func()

func (f FrameFunc) RequestFrame() { f() }

// Coalescer collapses high frequency updates into at most one per frame.
// Schedule stores the latest value and requests a frame if none is pending.
// Tick applies only the most recent value. Values between ticks are dropped.
type Coalescer[T any] struct {
	apply    func(T)
	frames   FrameRequester
	interval time.Duration

	pending   T
	has       bool
	scheduled bool
	last      time.Time
}

// NewCoalescer creates a coalescer that hands values to apply.
// frames may be nil when the host drives Tick on its own.
func NewCoalescer[T any](frames FrameRequester, interval time.Duration, apply func(T)) *Coalescer[T] {
	return &Coalescer[T]{
		apply:    apply,
		frames:   frames,
		interval: interval,
	}
}

// Schedule records v as the latest value.
func (c *Coalescer[T]) Schedule(v T) {
	c.pending = v
	c.has = true
	if c.scheduled {
		return // update already scheduled
	}
	c.scheduled = true
	c.request()
}

// Tick applies the pending value if the minimum interval since the last
// applied value has passed. Otherwise another frame is requested.
func (c *Coalescer[T]) Tick(now time.Time) bool {
	if !c.scheduled {
		return false
	}
	if !c.last.IsZero() && now.Sub(c.last) < c.interval {
		c.request()
		return false
	}
	c.scheduled = false
	c.last = now
	return c.run()
}

// Flush cancels the scheduled frame and applies the pending value right away.
func (c *Coalescer[T]) Flush() bool {
	c.scheduled = false
	return c.run()
}

// Cancel drops the pending value without applying it.
func (c *Coalescer[T]) Cancel() {
	var zero T
	c.pending = zero
	c.has = false
	c.scheduled = false
}

// Pending reports whether a value is waiting to be applied.
func (c *Coalescer[T]) Pending() bool {
	return c.has
}

// Latest returns the pending value, if any.
func (c *Coalescer[T]) Latest() (T, bool) {
	return c.pending, c.has
}

func (c *Coalescer[T]) run() bool {
	if !c.has {
		return false
	}
	v := c.pending
	var zero T
	c.pending = zero
	c.has = false
	c.apply(v)
	return true
}

func (c *Coalescer[T]) request() {
	if c.frames != nil {
		c.frames.RequestFrame()
	}
}
