package browse

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"kaa-web/internal/api"
)

// FetchFunc loads one page of listings for a filter.
type FetchFunc func(ctx context.Context, filter api.SearchFilter) (*api.PropertyPage, error)

const fetchTimeout = 15 * time.Second

// Controller owns the browse screen's filter state. The raw search input is
// buffered separately from the committed filter so typing does not fetch per
// keystroke; after the debounce interval of quiet it is committed, which
// resets the page to 1 like any other filter change. Each fetch carries a
// generation tag and stale responses are dropped, so a slow old request can
// never overwrite a newer result.
type Controller struct {
	mu         sync.Mutex
	fetch      FetchFunc
	debounce   time.Duration
	filter     api.SearchFilter
	rawSearch  string
	timer      *time.Timer
	generation uint64

	properties []api.Property
	firstPage  int
	lastPage   int
	total      int
	loading    bool
	errMsg     string
	fetchErr   error
}

// State is a render-ready snapshot of the controller. FetchErr keeps the last
// fetch error as a value so callers can tell an expired token apart from an
// ordinary upstream failure; Err is its display form.
type State struct {
	Filter     api.SearchFilter
	RawSearch  string
	Properties []api.Property
	FirstPage  int
	LastPage   int
	Total      int
	Loading    bool
	Err        string
	FetchErr   error
}

// NewController builds a controller starting on the given page (from the URL
// query string; anything below 1 becomes 1).
func NewController(fetch FetchFunc, debounce time.Duration, page int) *Controller {
	if page < 1 {
		page = 1
	}
	return &Controller{
		fetch:     fetch,
		debounce:  debounce,
		filter:    api.SearchFilter{Page: page},
		firstPage: 1,
		lastPage:  page,
	}
}

// Load issues the initial fetch for the current filter.
func (c *Controller) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadLocked()
}

// SetSearchInput buffers free-text input. The commit fires after the debounce
// interval of inactivity; every keystroke restarts the timer, so superseded
// input never issues a request.
func (c *Controller) SetSearchInput(input string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rawSearch = input
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.rawSearch == c.filter.SearchTerm {
			return
		}
		c.filter.SearchTerm = c.rawSearch
		c.filter.Page = 1
		c.reloadLocked()
	})
}

// Update mutates the filter through fn. Any effective change resets the page
// to 1 and refetches; a no-op mutation fetches nothing.
func (c *Controller) Update(fn func(f *api.SearchFilter)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	probe := c.filter
	probe.Page = 0
	before := probe.Encode()
	fn(&c.filter)
	probe = c.filter
	probe.Page = 0
	if probe.Encode() == before {
		return
	}
	c.filter.Page = 1
	c.reloadLocked()
}

// GoToPage clamps the requested page into the server-reported bounds, fetches
// it, and returns the clamped page for the caller to reflect into the URL.
func (c *Controller) GoToPage(page int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := ClampPage(page, c.firstPage, c.lastPage)
	if n != c.filter.Page {
		c.filter.Page = n
		c.reloadLocked()
	}
	return n
}

// Snapshot copies the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Filter:     c.filter,
		RawSearch:  c.rawSearch,
		Properties: append([]api.Property(nil), c.properties...),
		FirstPage:  c.firstPage,
		LastPage:   c.lastPage,
		Total:      c.total,
		Loading:    c.loading,
		Err:        c.errMsg,
		FetchErr:   c.fetchErr,
	}
}

// WaitIdle blocks until no fetch is in flight or the timeout elapses,
// reporting whether the controller went idle. Render paths use it to avoid
// serving the loading state for a fetch that is about to finish.
func (c *Controller) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		c.mu.Lock()
		loading := c.loading
		c.mu.Unlock()
		if !loading {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// reloadLocked starts a fetch for the current filter. Caller holds mu.
func (c *Controller) reloadLocked() {
	c.generation++
	gen := c.generation
	filter := c.filter
	c.loading = true
	c.errMsg = ""
	c.fetchErr = nil

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		page, err := c.fetch(ctx, filter)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			log.Debug().Uint64("generation", gen).Msg("dropping stale listing response")
			return
		}
		c.loading = false
		if err != nil {
			c.errMsg = err.Error()
			c.fetchErr = err
			return
		}
		c.properties = page.Properties
		c.firstPage = page.FirstPage
		c.lastPage = page.LastPage
		c.total = page.Total
	}()
}
