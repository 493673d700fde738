package sim

import (
	"context"
	"sync"
	"time"
)

// Ticker is the part of Session the clock drives.
type Ticker interface {
	Epoch() uint64
	TickTimer(epoch uint64) bool
}

// Clock delivers one timer tick per interval to a Ticker. The epoch is
// captured when the ticker fires, so a tick that loses the race with a phase
// change is rejected by the machine instead of draining the new phase.
type Clock struct {
	target   Ticker
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock returns a stopped clock. A non-positive interval means one second.
func NewClock(target Ticker, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{target: target, interval: interval}
}

// Start runs the clock until ctx is cancelled or Stop is called. Starting a
// running clock restarts it.
func (c *Clock) Start(ctx context.Context) {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done

	go func() {
		defer close(done)
		t := time.NewTicker(c.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				epoch := c.target.Epoch()
				c.target.TickTimer(epoch)
			}
		}
	}()
}

// Stop halts the clock and waits for its goroutine to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
