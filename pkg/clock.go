package pkg

import (
	"fmt"
	"sync"
	"time"
)

// Clock is one side's game clock. It belongs to the UI/match layer; the
// rules engine knows nothing about time.
type Clock struct {
	mu        sync.Mutex
	Duration  time.Duration
	Remaining time.Duration
	Increment time.Duration
	Paused    bool
	stop      chan struct{}
}

func NewClock(duration, increment time.Duration) *Clock {
	cl := &Clock{
		Duration:  duration,
		Remaining: duration,
		Increment: increment,
		Paused:    true,
		stop:      make(chan struct{}),
	}
	go cl.run()
	return cl
}

func (cl *Clock) String() string {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return fmt.Sprintf("%d:%02d", int(cl.Remaining.Minutes()), int(cl.Remaining.Seconds())%60)
}

func (cl *Clock) run() {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			cl.mu.Lock()
			if !cl.Paused && cl.Remaining > 0 {
				cl.Remaining -= time.Second
			}
			cl.mu.Unlock()
		case <-cl.stop:
			return
		}
	}
}

// Tick starts the clock running and adds the increment, the way a player
// presses the clock after moving.
func (cl *Clock) Tick() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.Paused = false
	cl.Remaining += cl.Increment
}

// Resume starts the countdown without adding the increment.
func (cl *Clock) Resume() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.Paused = false
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.Paused = true
}

// Flagged reports whether the player ran out of time.
func (cl *Clock) Flagged() bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.Remaining <= 0
}

func (cl *Clock) Reset() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.Remaining = cl.Duration
	cl.Paused = true
}

// Stop ends the ticker goroutine.
func (cl *Clock) Stop() {
	close(cl.stop)
}
