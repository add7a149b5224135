package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/credits"
	"kaa-web/internal/middleware"
	"kaa-web/internal/session"
)

// ProfileHandlers serves the profile screen: user card, balances, conversion
// form, and paginated history.
type ProfileHandlers struct {
	Registry *registry
}

type profileView struct {
	Profile session.Profile
	State   credits.State
	Pager   pagerView
}

func (h *ProfileHandlers) controller(c *fiber.Ctx) *credits.Controller {
	sess := middleware.GetSession(c)
	return h.Registry.creditsFor(sess.ID, sess.Token)
}

// Page GET /profile?page=
func (h *ProfileHandlers) Page(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	ctrl := h.controller(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if err := ctrl.LoadBalance(c.Context()); err != nil && isUnauthorized(err) {
		return err
	}
	if err := ctrl.LoadHistory(c.Context(), page); err != nil && isUnauthorized(err) {
		return err
	}

	state := ctrl.Snapshot()
	pager := pagerView{BaseURL: "/profile"}
	if state.History != nil {
		pager = pagerFor("/profile", state.History.Page, state.History.FirstPage, state.History.LastPage)
	}
	return render(c, "profile", profileView{
		Profile: session.UserProfile(sess.User),
		State:   state,
		Pager:   pager,
	})
}

// Convert POST /profile/convert — on success the screen snaps back to the
// freshest balance and the first history page.
func (h *ProfileHandlers) Convert(c *fiber.Ctx) error {
	ctrl := h.controller(c)
	if err := ctrl.Convert(c.Context(), c.FormValue("amount")); err != nil && isUnauthorized(err) {
		return err
	}
	return c.Redirect("/profile", fiber.StatusSeeOther)
}
