// Package search runs lookup cycles against the catalog and keeps the
// result list state that the web and terminal front-ends render.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/entities"
)

// ErrIndexOutOfRange is returned by Expand and Toggle for an index outside
// the list.
var ErrIndexOutOfRange = errors.New("index out of range")

const sinkComponent = "search"

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce delays each lookup by d. A newer query arriving during the
// wait supersedes the pending lookup before any request is made.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = d
	}
}

// Controller turns query changes into lookup cycles. Only the most recently
// started cycle may publish a result.
type Controller struct {
	client   catalog.Client
	sink     diagnostics.Sink
	debounce time.Duration

	mu        sync.Mutex
	query     QueryState
	state     entities.UIState
	cancel    context.CancelFunc // token of the in-flight cycle, nil when idle
	cycle     uint64
	observers []func(entities.UIState)
	closed    bool

	wg sync.WaitGroup
}

// NewController creates an idle controller. A nil sink falls back to LogSink.
func NewController(client catalog.Client, sink diagnostics.Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = diagnostics.LogSink{}
	}
	c := &Controller{
		client: client,
		sink:   sink,
		state: entities.UIState{
			Phase:    entities.PhaseIdle,
			Books:    []entities.DisplayBook{},
			Expanded: entities.NoneExpanded,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to be called after every state change. Calls are
// made outside the controller lock, possibly from lookup goroutines, so
// snapshots may arrive out of order; State is authoritative.
func (c *Controller) OnChange(fn func(entities.UIState)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// State returns a copy of the current state.
func (c *Controller) State() entities.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetQuery records a new query and starts a lookup cycle for it.
// Setting the current value again does nothing.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	if c.closed || !c.query.Set(q) {
		c.mu.Unlock()
		return
	}
	c.state.Query = q
	c.supersedeLocked()

	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		c.state.Books = []entities.DisplayBook{}
		c.state.Expanded = entities.NoneExpanded
		c.state.Phase = entities.PhaseIdle
		c.publishLocked()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	token := c.cycle
	c.state.Phase = entities.PhaseLoading
	c.state.Touched = true

	c.wg.Add(1)
	go c.run(ctx, token, trimmed)
	c.publishLocked()
}

// Toggle expands entry i, or collapses it when it is already expanded.
func (c *Controller) Toggle(i int) error {
	c.mu.Lock()
	if err := c.checkIndexLocked(i); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.state.Expanded == i {
		c.state.Expanded = entities.NoneExpanded
	} else {
		c.state.Expanded = i
	}
	c.publishLocked()
	return nil
}

// Expand makes entry i the single expanded entry.
func (c *Controller) Expand(i int) error {
	c.mu.Lock()
	if err := c.checkIndexLocked(i); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.state.Expanded == i {
		c.mu.Unlock()
		return nil
	}
	c.state.Expanded = i
	c.publishLocked()
	return nil
}

func (c *Controller) checkIndexLocked(i int) error {
	if n := len(c.state.Books); i < 0 || i >= n {
		return fmt.Errorf("expand %d of %d: %w", i, n, ErrIndexOutOfRange)
	}
	return nil
}

// Collapse clears the expanded entry.
func (c *Controller) Collapse() {
	c.mu.Lock()
	if c.state.Expanded == entities.NoneExpanded {
		c.mu.Unlock()
		return
	}
	c.state.Expanded = entities.NoneExpanded
	c.publishLocked()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close cancels the in-flight lookup and waits for its goroutine to return.
// Later query changes are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.supersedeLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) run(ctx context.Context, token uint64, query string) {
	defer c.wg.Done()

	if c.debounce > 0 {
		timer := time.NewTimer(c.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	lookupID := uuid.NewString()
	items, err := c.client.Lookup(ctx, query)
	c.finish(token, lookupID, query, items, err)
}

func (c *Controller) finish(token uint64, lookupID, query string, items []catalog.RawItem, err error) {
	if errors.Is(err, catalog.ErrCancelled) {
		return
	}

	var books []entities.DisplayBook
	replace := true
	switch {
	case err == nil:
		books = catalog.Normalize(items)
	case errors.Is(err, catalog.ErrInvalidResponse):
		log.Printf("search: lookup %s for %q: %v, showing no results", lookupID, query, err)
		books = []entities.DisplayBook{}
	default:
		replace = false
	}

	c.mu.Lock()
	if token != c.cycle || c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.cancel = nil

	if replace {
		c.state.Books = books
		c.state.Expanded = entities.NoneExpanded
	}
	c.state.Phase = entities.PhaseLoaded

	if !replace {
		c.sink.Report(sinkComponent, fmt.Errorf("lookup %s for %q: %w", lookupID, query, err))
	}
	c.publishLocked()
}

// supersedeLocked invalidates the current token. Any goroutine holding the
// old cycle number will find it stale when it reports back.
func (c *Controller) supersedeLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.cycle++
}

// publishLocked unlocks c.mu and notifies observers with the new state.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	observers := append([]func(entities.UIState){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() entities.UIState {
	snap := c.state
	snap.Books = append([]entities.DisplayBook(nil), c.state.Books...)
	if snap.Books == nil {
		snap.Books = []entities.DisplayBook{}
	}
	return snap
}
