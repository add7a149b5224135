package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/api"
	"kaa-web/internal/browse"
	"kaa-web/internal/middleware"
)

func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

// FavoritesHandlers serves the paginated favorites screen.
type FavoritesHandlers struct {
	API *api.Client
}

type favoritesView struct {
	Properties []api.Property
	Pager      pagerView
	Err        string
}

// Page GET /favorites?page=
func (h *FavoritesHandlers) Page(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	sess := middleware.GetSession(c)

	result, err := h.API.Favorites(c.Context(), sess.Token, page)
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		return render(c, "favorites", favoritesView{
			Err:   err.Error(),
			Pager: pagerFor("/favorites", page, 1, page),
		})
	}

	// The URL may ask for a page beyond what the server reports; snap back
	// into bounds before rendering.
	clamped := browse.ClampPage(page, result.FirstPage, result.LastPage)
	if clamped != page {
		return c.Redirect("/favorites?page="+strconv.Itoa(clamped), fiber.StatusSeeOther)
	}
	return render(c, "favorites", favoritesView{
		Properties: result.Properties,
		Pager:      pagerFor("/favorites", page, result.FirstPage, result.LastPage),
	})
}
