package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kaa-web/internal/api"
	"kaa-web/internal/middleware"
	"kaa-web/internal/pkg/optimistic"
)

// PropertyHandlers serves the detail screen and the favorite toggle.
type PropertyHandlers struct {
	API *api.Client
}

type propertyView struct {
	Property *api.Property
	Err      string
}

// Detail GET /property/:id
func (h *PropertyHandlers) Detail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return render(c, "property", propertyView{Err: "No property ID provided."})
	}
	sess := middleware.GetSession(c)
	property, err := h.API.GetProperty(c.Context(), sess.Token, id)
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		return render(c, "property", propertyView{Err: "Could not load property details."})
	}
	return render(c, "property", propertyView{Property: property})
}

// ToggleFavorite POST /property/:id/favorite — one request per toggle. The
// browser shows the optimistic value immediately; the response carries the
// reconciled flag, reverted to the prior value when the request failed.
func (h *PropertyHandlers) ToggleFavorite(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid property id")
	}
	current := c.FormValue("current") == "true"
	toggle := optimistic.Begin(current)

	sess := middleware.GetSession(c)
	server, ok, err := h.API.ToggleFavorite(c.Context(), sess.Token, id)
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		log.Error().Err(err).Int64("property_id", id).Msg("toggle favorite failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"is_favorite": toggle.Revert(),
			"error":       err.Error(),
		})
	}
	return c.JSON(fiber.Map{"is_favorite": toggle.Reconcile(server, ok)})
}
