package web

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/api"
	"kaa-web/internal/browse"
	"kaa-web/internal/middleware"
)

// renderWait bounds how long a full page render waits for an in-flight fetch
// before falling back to the loading state.
const renderWait = 3 * time.Second

// BrowseHandlers serves the dashboard (list/search/filter/paginate) screen.
type BrowseHandlers struct {
	Registry *registry
}

type dashboardView struct {
	State        browse.State
	Pager        pagerView
	ListingTypes []string
	Categories   []string
}

type pagerView struct {
	BaseURL  string
	Current  int
	PrevPage int
	NextPage int
	Buttons  []browse.PageToken
}

// Dashboard GET /dashboard
func (h *BrowseHandlers) Dashboard(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	page, _ := strconv.Atoi(c.Query("page", "1"))
	ctrl := h.Registry.browseFor(sess.ID, sess.Token, page)

	// Non-search filters arrive with the full page load; search text goes
	// through the debounced endpoint instead. An empty param is a deliberate
	// clear (the form always submits every field), so only absent params keep
	// their committed value.
	args := c.Context().QueryArgs()
	param := func(key, current string) string {
		if args.Has(key) {
			return string(args.Peek(key))
		}
		return current
	}
	ctrl.Update(func(f *api.SearchFilter) {
		f.ListingType = param("listing_type", f.ListingType)
		f.Category = param("category", f.Category)
		f.City = param("city", f.City)
		f.State = param("state", f.State)
		f.MinPrice = param("min_price", f.MinPrice)
		f.MaxPrice = param("max_price", f.MaxPrice)
		f.SortBy = param("sort_by", f.SortBy)
	})
	if c.Query("page") != "" {
		clamped := ctrl.GoToPage(page)
		if clamped != page {
			return c.Redirect("/dashboard?page="+strconv.Itoa(clamped), fiber.StatusSeeOther)
		}
	}
	ctrl.WaitIdle(renderWait)

	state := ctrl.Snapshot()
	if isUnauthorized(state.FetchErr) {
		return state.FetchErr
	}
	return render(c, "dashboard", dashboardView{
		State: state,
		Pager: pagerFor("/dashboard", state.Filter.Page, state.FirstPage, state.LastPage),
		ListingTypes: []string{"For Rent", "For Sale"},
		Categories:   []string{"House", "Apartment", "Bungalow", "Land"},
	})
}

// SearchInput GET /dashboard/search?q= — buffers a keystroke into the
// debounced search input; no fetch is issued until typing quiets down.
func (h *BrowseHandlers) SearchInput(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	ctrl := h.Registry.browseFor(sess.ID, sess.Token, 1)
	ctrl.SetSearchInput(c.Query("q"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Results GET /dashboard/results — the listings fragment the page script
// polls while a debounced search settles.
func (h *BrowseHandlers) Results(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	ctrl := h.Registry.browseFor(sess.ID, sess.Token, 1)
	state := ctrl.Snapshot()
	if isUnauthorized(state.FetchErr) {
		return state.FetchErr
	}
	return render(c, "listings", state)
}

func pagerFor(baseURL string, current, first, last int) pagerView {
	return pagerView{
		BaseURL:  baseURL,
		Current:  current,
		PrevPage: browse.ClampPage(current-1, first, last),
		NextPage: browse.ClampPage(current+1, first, last),
		Buttons:  browse.PageButtons(current, first, last),
	}
}
