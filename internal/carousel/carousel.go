// Package carousel drives the alert carousel: a ticker that advances the
// visible slide and a swipe tracker for manual navigation.
package carousel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultInterval = 5 * time.Second

// Carousel owns at most one auto-advance timer at a time. Start and
// Interact replace the running timer; Stop cancels it.
type Carousel struct {
	interval time.Duration

	// run serializes timer lifecycle changes. Lifecycle calls never wait on
	// the timer goroutine, so OnAdvance callbacks may call them.
	run   sync.Mutex
	timer *timer
	live  atomic.Int32

	mu        sync.Mutex
	size      int
	index     int
	onAdvance func(int)
}

// timer is one auto-advance goroutine. A timer stops counting as live as
// soon as it is cancelled, whether or not its goroutine has exited yet.
type timer struct {
	cancel  context.CancelFunc
	release sync.Once
}

func New(size int, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{size: size, interval: interval}
}

// OnAdvance registers a callback invoked with the new index after each
// automatic advance.
func (c *Carousel) OnAdvance(fn func(int)) {
	c.mu.Lock()
	c.onAdvance = fn
	c.mu.Unlock()
}

func (c *Carousel) Start(ctx context.Context) {
	c.run.Lock()
	defer c.run.Unlock()
	c.stopLocked()

	tickCtx, cancel := context.WithCancel(ctx)
	t := &timer{cancel: cancel}
	c.timer = t
	c.live.Add(1)

	ticker := time.NewTicker(c.interval)
	go func() {
		defer c.releaseTimer(t)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				if tickCtx.Err() != nil {
					return
				}
				c.advance(tickCtx)
			}
		}
	}()
}

func (c *Carousel) Stop() {
	c.run.Lock()
	defer c.run.Unlock()
	c.stopLocked()
}

func (c *Carousel) stopLocked() {
	if c.timer == nil {
		return
	}
	c.timer.cancel()
	c.releaseTimer(c.timer)
	c.timer = nil
}

func (c *Carousel) releaseTimer(t *timer) {
	t.release.Do(func() { c.live.Add(-1) })
}

// Interact restarts a running timer so a manual move gets a full interval
// before the next automatic one.
func (c *Carousel) Interact(ctx context.Context) {
	if !c.Running() {
		return
	}
	c.Start(ctx)
}

func (c *Carousel) Running() bool {
	c.run.Lock()
	defer c.run.Unlock()
	return c.timer != nil
}

// ActiveTimers reports how many timer goroutines are alive.
func (c *Carousel) ActiveTimers() int {
	return int(c.live.Load())
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) SetSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = size
	if size <= 0 || c.index >= size {
		c.index = 0
	}
}

func (c *Carousel) GoTo(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= c.size {
		return false
	}
	c.index = index
	return true
}

func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(1)
}

func (c *Carousel) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(-1)
}

func (c *Carousel) stepLocked(delta int) int {
	if c.size <= 0 {
		return 0
	}
	c.index = ((c.index+delta)%c.size + c.size) % c.size
	return c.index
}

// advance skips a tick that raced with a stop.
func (c *Carousel) advance(ctx context.Context) {
	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	idx := c.stepLocked(1)
	fn := c.onAdvance
	c.mu.Unlock()
	if fn != nil {
		fn(idx)
	}
}

// Swipe applies a finished gesture and restarts the timer.
func (c *Carousel) Swipe(ctx context.Context, dir Direction) int {
	var idx int
	switch dir {
	case SwipeLeft:
		idx = c.Next()
	case SwipeRight:
		idx = c.Previous()
	default:
		return c.Index()
	}
	c.Interact(ctx)
	return idx
}
