// Package logbuf keeps the most recent agent log lines for the console panel.
// It is diagnostic only and never part of the run view state.
package logbuf

import (
	"sync"
	"time"
)

type Entry struct {
	At   time.Time
	Text string
}

type RingBuffer struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	head     int
	count    int
	now      func() time.Time
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 500
	}
	return &RingBuffer{
		entries:  make([]Entry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

func (rb *RingBuffer) Append(text string) {
	rb.mu.Lock()
	rb.entries[rb.head] = Entry{At: rb.now(), Text: text}
	rb.head = (rb.head + 1) % rb.capacity
	if rb.count < rb.capacity {
		rb.count++
	}
	rb.mu.Unlock()
}

// Entries returns all retained entries, oldest first.
func (rb *RingBuffer) Entries() []Entry {
	return rb.Tail(rb.Len())
}

// Tail returns the newest n entries, oldest first.
func (rb *RingBuffer) Tail(n int) []Entry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n <= 0 || rb.count == 0 {
		return nil
	}
	if n > rb.count {
		n = rb.count
	}

	result := make([]Entry, n)
	start := (rb.head - n + rb.capacity) % rb.capacity
	if start+n <= rb.capacity {
		copy(result, rb.entries[start:start+n])
	} else {
		first := copy(result, rb.entries[start:])
		copy(result[first:], rb.entries[:n-first])
	}
	return result
}

func (rb *RingBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

func (rb *RingBuffer) Reset() {
	rb.mu.Lock()
	rb.head = 0
	rb.count = 0
	clear(rb.entries)
	rb.mu.Unlock()
}
