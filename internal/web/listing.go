package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/listing"
	"kaa-web/internal/middleware"
)

// ListingHandlers serves the listing-creation flow.
type ListingHandlers struct {
	Registry  *registry
	MaxImages int
}

type listingView struct {
	Form      listing.Form
	MaxImages int
	Uploading bool
	Submitted bool
	Err       string
}

func (h *ListingHandlers) controller(c *fiber.Ctx) *listing.Controller {
	sess := middleware.GetSession(c)
	return h.Registry.listingFor(sess.ID, sess.Token)
}

// Page GET /list-property
func (h *ListingHandlers) Page(c *fiber.Ctx) error {
	ctrl := h.controller(c)
	if c.Query("reset") != "" {
		ctrl.Reset()
	}
	return render(c, "list_property", listingView{
		Form:      ctrl.Form(),
		MaxImages: h.MaxImages,
		Uploading: ctrl.Uploading(),
		Submitted: ctrl.Submitted(),
		Err:       ctrl.Err(),
	})
}

// Upload POST /list-property/upload — one browser file-selection event
// becomes one concurrent upload batch.
func (h *ListingHandlers) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected a multipart form")
	}

	var files []listing.File
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read "+header.Filename)
		}
		defer f.Close()
		files = append(files, listing.File{Name: header.Filename, Size: header.Size, Content: f})
	}

	ctrl := h.controller(c)
	if c.FormValue("kind") == "proofs" {
		err = ctrl.AddProofs(c.Context(), files)
	} else {
		err = ctrl.AddImages(c.Context(), files)
	}
	if err != nil && isUnauthorized(err) {
		return err
	}
	// Batch errors are already in the controller's inline error state.
	return c.Redirect("/list-property", fiber.StatusSeeOther)
}

// Remove POST /list-property/remove — drops one uploaded URL by index.
func (h *ListingHandlers) Remove(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.FormValue("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid index")
	}
	ctrl := h.controller(c)
	if c.FormValue("kind") == "proofs" {
		ctrl.RemoveProof(index)
	} else {
		ctrl.RemoveImage(index)
	}
	return c.Redirect("/list-property", fiber.StatusSeeOther)
}

// Submit POST /list-property
func (h *ListingHandlers) Submit(c *fiber.Ctx) error {
	ctrl := h.controller(c)
	ctrl.SetFields(listing.Form{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Price:         c.FormValue("price"),
		Condition:     c.FormValue("condition"),
		Negotiable:    c.FormValue("negotiable"),
		ListingType:   c.FormValue("listing_type"),
		Category:      c.FormValue("category"),
		Country:       c.FormValue("country"),
		State:         c.FormValue("state"),
		City:          c.FormValue("city"),
		StreetAddress: c.FormValue("street_address"),
		RentCycle:     c.FormValue("rent_cycle"),
		ContactEmail:  c.FormValue("contact_email"),
		ContactPhone:  c.FormValue("contact_phone"),
	})

	err := ctrl.Submit(c.Context())
	if err != nil && !errors.Is(err, listing.ErrValidation) && isUnauthorized(err) {
		return err
	}
	// Success renders the confirmation; failures re-render with the message.
	return c.Redirect("/list-property", fiber.StatusSeeOther)
}
