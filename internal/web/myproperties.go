package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kaa-web/internal/api"
	"kaa-web/internal/middleware"
)

// MyPropertiesHandlers serves the owner's listings and per-row delete.
type MyPropertiesHandlers struct {
	API *api.Client
}

type myPropertiesView struct {
	Properties []api.Property
	Err        string
}

// Page GET /my-properties
func (h *MyPropertiesHandlers) Page(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	result, err := h.API.SearchProperties(c.Context(), sess.Token, api.SearchFilter{Page: 1})
	if err != nil {
		if isUnauthorized(err) {
			return err
		}
		return render(c, "my_properties", myPropertiesView{Err: err.Error()})
	}
	return render(c, "my_properties", myPropertiesView{Properties: result.Properties})
}

// Delete POST /my-properties/:id/delete
func (h *MyPropertiesHandlers) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid property id")
	}
	sess := middleware.GetSession(c)
	if err := h.API.DeleteProperty(c.Context(), sess.Token, id); err != nil {
		if isUnauthorized(err) {
			return err
		}
		log.Error().Err(err).Int64("property_id", id).Msg("delete property failed")
	}
	return c.Redirect("/my-properties", fiber.StatusSeeOther)
}
