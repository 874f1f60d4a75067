package traversal

import (
	"sync"
	"time"
)

// Handle identifies a scheduled continuation.
type Handle interface {
	// Cancel prevents the continuation from running. It reports whether the
	// call stopped it; false means it already ran or was already cancelled.
	Cancel() bool
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// TimerScheduler schedules continuations on runtime timers.
type TimerScheduler struct{}

type timerHandle struct {
	timer *time.Timer
}

// Schedule implements Scheduler using time.AfterFunc.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(delay, fn)}
}

// Cancel implements Handle.
func (h *timerHandle) Cancel() bool {
	return h.timer.Stop()
}

// ManualScheduler holds continuations until Advance is called. It drives an
// Engine without timers, e.g. for headless replays.
type ManualScheduler struct {
	queue []*manualHandle
	mu    sync.Mutex
}

type manualHandle struct {
	delay time.Duration
	fn    func()
	done  bool
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &manualHandle{delay: delay, fn: fn}
	m.queue = append(m.queue, h)
	return &manualCancel{scheduler: m, handle: h}
}

// Pending returns the number of continuations waiting to run.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.queue {
		if !h.done {
			n++
		}
	}
	return n
}

// Advance runs the oldest waiting continuation and reports whether there was one.
func (m *ManualScheduler) Advance() bool {
	m.mu.Lock()
	var next *manualHandle
	for len(m.queue) > 0 {
		h := m.queue[0]
		m.queue = m.queue[1:]
		if !h.done {
			next = h
			break
		}
	}
	if next != nil {
		next.done = true
	}
	m.mu.Unlock()

	if next == nil {
		return false
	}
	next.fn()
	return true
}

type manualCancel struct {
	scheduler *ManualScheduler
	handle    *manualHandle
}

// Cancel implements Handle.
func (c *manualCancel) Cancel() bool {
	c.scheduler.mu.Lock()
	defer c.scheduler.mu.Unlock()
	if c.handle.done {
		return false
	}
	c.handle.done = true
	return true
}

// NextDelay returns the delay of the oldest waiting continuation.
func (m *ManualScheduler) NextDelay() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.queue {
		if !h.done {
			return h.delay, true
		}
	}
	return 0, false
}
