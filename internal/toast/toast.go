// Package toast holds the single ephemeral notification slot driven by
// query and mutation outcomes. The slot is most-recent-wins: showing a
// toast while one is visible replaces it, nothing is queued.
package toast

import (
	"sync"
	"time"
)

// Severity classifies a toast message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Default dismiss windows. Errors stay visible longer.
const (
	DefaultDuration      = 3 * time.Second
	DefaultErrorDuration = 5 * time.Second
)

// State is the observable toast slot.
type State struct {
	Message  string
	Severity Severity
	Visible  bool
	Duration time.Duration
}

// Channel owns the toast slot. Writers only call Show/Hide and the
// severity wrappers; nothing reads or mutates the slot directly.
type Channel struct {
	mu      sync.Mutex
	state   State
	timer   *time.Timer
	subs    map[uint64]func(State)
	nextSub uint64
}

// NewChannel creates an empty, hidden toast channel.
func NewChannel() *Channel {
	return &Channel{subs: make(map[uint64]func(State))}
}

// Show displays a message, replacing any visible toast. A duration of 0
// pins the toast until Hide is called.
func (c *Channel) Show(message string, severity Severity, duration time.Duration) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = State{
		Message:  message,
		Severity: severity,
		Visible:  true,
		Duration: duration,
	}
	if duration > 0 {
		c.timer = time.AfterFunc(duration, c.Hide)
	}
	c.mu.Unlock()

	c.notify()
}

// Hide clears the slot. Timer expiry and explicit dismissal both land
// here; the hidden state does not record which one happened.
func (c *Channel) Hide() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = State{}
	c.mu.Unlock()

	c.notify()
}

// Success shows a success toast with the default dismiss window.
func (c *Channel) Success(message string) {
	c.Show(message, SeveritySuccess, DefaultDuration)
}

// Error shows an error toast with the longer error dismiss window.
func (c *Channel) Error(message string) {
	c.Show(message, SeverityError, DefaultErrorDuration)
}

// Info shows an info toast with the default dismiss window.
func (c *Channel) Info(message string) {
	c.Show(message, SeverityInfo, DefaultDuration)
}

// Warning shows a warning toast with the default dismiss window.
func (c *Channel) Warning(message string) {
	c.Show(message, SeverityWarning, DefaultDuration)
}

// Current returns a copy of the slot state.
func (c *Channel) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for every slot change. The returned cancel
// function removes the subscription.
func (c *Channel) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Channel) notify() {
	c.mu.Lock()
	state := c.state
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
