package flows

import (
	"sync"
	"time"
)

// Ticker is the part of *time.Ticker the countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Countdown decrements once per tick until zero. Start cancels a running
// countdown, so at most one goroutine ticks at a time.
type Countdown struct {
	newTicker TickerFunc

	mu        sync.Mutex
	remaining int
	stop      chan struct{}
}

func NewCountdown(newTicker TickerFunc) *Countdown {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Countdown{newTicker: newTicker}
}

func (c *Countdown) Start(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.remaining = seconds
	if seconds <= 0 {
		return
	}

	stop := make(chan struct{})
	c.stop = stop
	go c.run(c.newTicker(time.Second), stop)
}

func (c *Countdown) run(t Ticker, stop chan struct{}) {
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
		}

		c.mu.Lock()
		if c.stop != stop {
			c.mu.Unlock()
			return
		}
		c.remaining--
		left := c.remaining
		if left <= 0 {
			c.stop = nil
		}
		c.mu.Unlock()

		if left <= 0 {
			return
		}
	}
}

// Stop cancels the countdown and zeroes it.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.remaining = 0
}

func (c *Countdown) cancelLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
