// Package diagnostics receives lookup failures that are not surfaced to the
// user. Reports are one-way and message-only.
package diagnostics

import (
	"log"
	"sync"
	"time"
)

// Sink accepts failure reports from search controllers.
type Sink interface {
	Report(component string, err error)
}

// Entry is one recorded failure.
type Entry struct {
	Time      time.Time `json:"time"`
	Component string    `json:"component"`
	Message   string    `json:"message"`
}

// LogSink writes reports to the standard logger.
type LogSink struct{}

func (LogSink) Report(component string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %s", component, err.Error())
}

// Multi fans a report out to several sinks.
type Multi []Sink

func (m Multi) Report(component string, err error) {
	for _, s := range m {
		if s != nil {
			s.Report(component, err)
		}
	}
}

// DefaultRingSize is used when NewRing gets a non-positive size.
const DefaultRingSize = 64

// Ring keeps the most recent reports in memory for inspection.
// Goroutine-safe.
type Ring struct {
	mu    sync.Mutex
	buf   []Entry
	size  int
	head  int // next write position
	count int // valid entries (0..size)
	total uint64
}

// NewRing creates a ring holding up to size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{
		buf:  make([]Entry, size),
		size: size,
	}
}

// Report records err, overwriting the oldest entry if full. Nil errors are ignored.
func (r *Ring) Report(component string, err error) {
	if err == nil {
		return
	}
	e := Entry{Time: time.Now(), Component: component, Message: err.Error()}

	r.mu.Lock()
	r.buf[r.head] = e
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
	r.total++
	r.mu.Unlock()
}

// Snapshot returns the buffered entries, oldest first.
func (r *Ring) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return []Entry{}
	}

	result := make([]Entry, r.count)
	if r.count < r.size {
		copy(result, r.buf[:r.count])
	} else {
		n := copy(result, r.buf[r.head:])
		copy(result[n:], r.buf[:r.head])
	}
	return result
}

// Last returns the most recent entry.
func (r *Ring) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return Entry{}, false
	}
	return r.buf[(r.head-1+r.size)%r.size], true
}

// Len returns the number of buffered entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Total returns how many reports were received since creation, including
// those already overwritten.
func (r *Ring) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
