package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/entities"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeResult struct {
	items []catalog.RawItem
	err   error
}

// fakeCatalog blocks every lookup until the test responds for its query.
// Lookups ignore cancellation unless honorCancel is set, which models a
// transport delivering a response after the caller gave up.
type fakeCatalog struct {
	honorCancel bool

	mu      sync.Mutex
	calls   []string
	pending map[string]chan fakeResult
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{pending: make(map[string]chan fakeResult)}
}

func (f *fakeCatalog) channel(query string) chan fakeResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.pending[query]
	if !ok {
		ch = make(chan fakeResult, 1)
		f.pending[query] = ch
	}
	return ch
}

func (f *fakeCatalog) Lookup(ctx context.Context, query string) ([]catalog.RawItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	ch := f.channel(query)
	if f.honorCancel {
		select {
		case <-ctx.Done():
			return nil, catalog.ErrCancelled
		case r := <-ch:
			return r.items, r.err
		}
	}
	r := <-ch
	return r.items, r.err
}

func (f *fakeCatalog) respond(query string, items []catalog.RawItem, err error) {
	f.channel(query) <- fakeResult{items: items, err: err}
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) waitCalls(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.Calls()) >= n }, waitFor, tick)
}

func waitPhase(t *testing.T, c *Controller, phase entities.Phase) entities.UIState {
	t.Helper()
	require.Eventually(t, func() bool { return c.State().Phase == phase }, waitFor, tick)
	return c.State()
}

func intPtr(n int) *int { return &n }

func book(title, image string) catalog.RawItem {
	item := catalog.RawItem{VolumeInfo: catalog.VolumeInfo{Title: title}}
	if image != "" {
		item.VolumeInfo.ImageLinks = &catalog.ImageLinks{SmallThumbnail: image}
	}
	return item
}

func duneItems() []catalog.RawItem {
	dune := book("Dune", "http://img/dune.jpg")
	dune.VolumeInfo.Description = "A desert planet..."
	dune.VolumeInfo.PageCount = intPtr(412)
	dune.SaleInfo.RetailPrice = &catalog.Price{Amount: 9.99, CurrencyCode: "USD"}
	return []catalog.RawItem{dune, book("Dune Messiah", "")}
}

func TestController_InitialState(t *testing.T) {
	c := NewController(newFakeCatalog(), nil)
	defer c.Close()

	state := c.State()
	assert.Equal(t, entities.PhaseIdle, state.Phase)
	assert.Empty(t, state.Books)
	assert.Equal(t, entities.NoneExpanded, state.Expanded)
	assert.False(t, state.Touched)
}

func TestController_DuneScenario(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, diagnostics.NewRing(4))
	defer c.Close()

	c.SetQuery("dune")
	assert.Equal(t, entities.PhaseLoading, c.State().Phase)
	assert.True(t, c.State().Touched)

	fake.respond("dune", duneItems(), nil)
	state := waitPhase(t, c, entities.PhaseLoaded)

	require.Len(t, state.Books, 1)
	got := state.Books[0]
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "9.99 USD", got.Price)
	require.NotNil(t, got.Pages)
	assert.Equal(t, 412, *got.Pages)
	assert.Equal(t, "A desert planet...", got.Description)
	assert.Equal(t, []string{"dune"}, fake.Calls())
}

func TestController_EmptyQueryMakesNoCall(t *testing.T) {
	for _, q := range []string{"   ", "\t\n"} {
		fake := newFakeCatalog()
		c := NewController(fake, nil)

		c.SetQuery(q)

		state := c.State()
		assert.Equal(t, entities.PhaseIdle, state.Phase)
		assert.Empty(t, state.Books)
		assert.False(t, state.Touched)
		c.Close()
		assert.Empty(t, fake.Calls())
	}
}

func TestController_QueryClearedWhileInFlight(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)

	c.SetQuery("dune")
	fake.waitCalls(t, 1)

	c.SetQuery("")
	state := c.State()
	assert.Equal(t, entities.PhaseIdle, state.Phase)
	assert.Empty(t, state.Books)

	// The superseded lookup answers late; Close waits for it to report back.
	fake.respond("dune", duneItems(), nil)
	c.Close()

	state = c.State()
	assert.Equal(t, entities.PhaseIdle, state.Phase)
	assert.Empty(t, state.Books)
}

func TestController_QueryClearedAfterLoad(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	defer c.Close()

	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	waitPhase(t, c, entities.PhaseLoaded)
	require.NoError(t, c.Expand(0))

	c.SetQuery(" ")

	state := c.State()
	assert.Equal(t, entities.PhaseIdle, state.Phase)
	assert.Empty(t, state.Books)
	assert.Equal(t, entities.NoneExpanded, state.Expanded)
	assert.True(t, state.Touched)
}

func TestController_SupersededResultNeverApplied(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)

	c.SetQuery("a")
	fake.waitCalls(t, 1)
	c.SetQuery("b")
	fake.waitCalls(t, 2)

	fake.respond("b", []catalog.RawItem{book("Beta", "http://img/b.jpg")}, nil)
	state := waitPhase(t, c, entities.PhaseLoaded)
	require.Len(t, state.Books, 1)
	assert.Equal(t, "Beta", state.Books[0].Title)

	fake.respond("a", []catalog.RawItem{book("Alpha", "http://img/a.jpg")}, nil)
	c.Close()

	state = c.State()
	require.Len(t, state.Books, 1)
	assert.Equal(t, "Beta", state.Books[0].Title)
	assert.Equal(t, "b", state.Query)
}

func TestController_SupersededFailureNotReported(t *testing.T) {
	fake := newFakeCatalog()
	ring := diagnostics.NewRing(4)
	c := NewController(fake, ring)

	c.SetQuery("a")
	fake.waitCalls(t, 1)
	c.SetQuery("b")
	fake.waitCalls(t, 2)

	fake.respond("a", nil, &catalog.NetworkError{StatusCode: 500})
	fake.respond("b", []catalog.RawItem{book("Beta", "http://img/b.jpg")}, nil)
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	assert.Equal(t, 0, ring.Len())
	assert.Len(t, c.State().Books, 1)
}

func TestController_CancellationReachesClient(t *testing.T) {
	fake := newFakeCatalog()
	fake.honorCancel = true
	c := NewController(fake, nil)

	c.SetQuery("a")
	fake.waitCalls(t, 1)
	c.SetQuery("b")
	fake.waitCalls(t, 2)

	// "a" returns ErrCancelled on its own; nothing is published for it.
	fake.respond("b", nil, nil)
	state := waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	assert.Empty(t, state.Books)
	assert.Equal(t, "b", c.State().Query)
}

func TestController_NetworkErrorKeepsList(t *testing.T) {
	fake := newFakeCatalog()
	ring := diagnostics.NewRing(4)
	c := NewController(fake, ring)
	defer c.Close()

	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	before := waitPhase(t, c, entities.PhaseLoaded)

	c.SetQuery("dune messiah")
	assert.Equal(t, entities.PhaseLoading, c.State().Phase)
	assert.Equal(t, before.Books, c.State().Books, "list stays stale while loading")

	fake.respond("dune messiah", nil, &catalog.NetworkError{StatusCode: 503})
	after := waitPhase(t, c, entities.PhaseLoaded)

	assert.Equal(t, before.Books, after.Books)
	require.Equal(t, 1, ring.Len())
	last, _ := ring.Last()
	assert.Equal(t, "search", last.Component)
	assert.Contains(t, last.Message, "503")
}

func TestController_InvalidResponseShowsNoResults(t *testing.T) {
	fake := newFakeCatalog()
	ring := diagnostics.NewRing(4)
	c := NewController(fake, ring)
	defer c.Close()

	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	waitPhase(t, c, entities.PhaseLoaded)

	c.SetQuery("garbage")
	fake.respond("garbage", nil, catalog.ErrInvalidResponse)
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Phase == entities.PhaseLoaded && len(s.Books) == 0
	}, waitFor, tick)

	assert.Equal(t, 0, ring.Len())
}

func TestController_SameQueryIsNoop(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)

	c.SetQuery("dune")
	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	assert.Equal(t, []string{"dune"}, fake.Calls())
}

func TestController_QueryIsTrimmedForLookup(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)

	c.SetQuery("  dune ")
	fake.respond("dune", nil, nil)
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	assert.Equal(t, []string{"dune"}, fake.Calls())
	assert.Equal(t, "  dune ", c.State().Query)
}

func TestController_Debounce(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil, WithDebounce(100*time.Millisecond))

	c.SetQuery("d")
	c.SetQuery("du")
	c.SetQuery("dune")
	assert.Equal(t, entities.PhaseLoading, c.State().Phase)

	fake.respond("dune", duneItems(), nil)
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	assert.Equal(t, []string{"dune"}, fake.Calls())
}

func TestController_ExpandCollapse(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	defer c.Close()

	assert.ErrorIs(t, c.Expand(0), ErrIndexOutOfRange)

	c.SetQuery("a")
	fake.respond("a", []catalog.RawItem{
		book("One", "http://img/1.jpg"),
		book("Two", "http://img/2.jpg"),
	}, nil)
	waitPhase(t, c, entities.PhaseLoaded)

	require.NoError(t, c.Expand(0))
	assert.Equal(t, 0, c.State().Expanded)

	require.NoError(t, c.Expand(1))
	assert.Equal(t, 1, c.State().Expanded, "selecting another entry collapses the previous one")

	require.NoError(t, c.Toggle(1))
	assert.Equal(t, entities.NoneExpanded, c.State().Expanded)

	require.NoError(t, c.Toggle(0))
	c.Collapse()
	assert.Equal(t, entities.NoneExpanded, c.State().Expanded)

	assert.ErrorIs(t, c.Expand(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Toggle(-1), ErrIndexOutOfRange)
}

func TestController_ToggleRejectsInvalidIndex(t *testing.T) {
	c := NewController(newFakeCatalog(), nil)
	defer c.Close()

	published := 0
	c.OnChange(func(entities.UIState) { published++ })

	assert.ErrorIs(t, c.Toggle(entities.NoneExpanded), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Toggle(0), ErrIndexOutOfRange)
	assert.Equal(t, entities.NoneExpanded, c.State().Expanded)
	assert.Zero(t, published)
}

func TestController_ConcurrentTogglesAlternate(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	defer c.Close()

	c.SetQuery("a")
	fake.respond("a", []catalog.RawItem{book("One", "http://img/1.jpg")}, nil)
	waitPhase(t, c, entities.PhaseLoaded)

	const toggles = 50
	var wg sync.WaitGroup
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Toggle(0))
		}()
	}
	wg.Wait()

	assert.Equal(t, entities.NoneExpanded, c.State().Expanded, "an even number of toggles leaves the entry collapsed")
}

func TestController_ListReplacementResetsExpanded(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	defer c.Close()

	c.SetQuery("a")
	fake.respond("a", []catalog.RawItem{
		book("One", "http://img/1.jpg"),
		book("Two", "http://img/2.jpg"),
	}, nil)
	waitPhase(t, c, entities.PhaseLoaded)
	require.NoError(t, c.Expand(1))

	c.SetQuery("b")
	fake.respond("b", []catalog.RawItem{book("Three", "http://img/3.jpg")}, nil)
	state := waitPhase(t, c, entities.PhaseLoaded)

	assert.Equal(t, entities.NoneExpanded, state.Expanded)
	_, ok := state.ExpandedBook()
	assert.False(t, ok)
}

func TestController_OnChange(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)

	var mu sync.Mutex
	var phases []entities.Phase
	c.OnChange(func(s entities.UIState) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	})

	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, phases, entities.PhaseLoading)
	assert.Contains(t, phases, entities.PhaseLoaded)
}

func TestController_StateIsACopy(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	defer c.Close()

	c.SetQuery("dune")
	fake.respond("dune", duneItems(), nil)
	state := waitPhase(t, c, entities.PhaseLoaded)

	state.Books[0].Title = "changed"
	assert.Equal(t, "Dune", c.State().Books[0].Title)
}

func TestController_ClosedIgnoresQueries(t *testing.T) {
	fake := newFakeCatalog()
	c := NewController(fake, nil)
	c.Close()

	c.SetQuery("dune")

	assert.Equal(t, entities.PhaseIdle, c.State().Phase)
	assert.Empty(t, fake.Calls())
}

func TestController_ReportsWrappedNetworkError(t *testing.T) {
	fake := newFakeCatalog()
	var got error
	sink := sinkFunc(func(_ string, err error) { got = err })
	c := NewController(fake, sink)

	c.SetQuery("dune")
	fake.respond("dune", nil, &catalog.NetworkError{Err: errors.New("connection refused")})
	waitPhase(t, c, entities.PhaseLoaded)
	c.Close()

	require.Error(t, got)
	assert.True(t, catalog.IsNetworkError(got))
}

type sinkFunc func(component string, err error)

func (f sinkFunc) Report(component string, err error) { f(component, err) }
