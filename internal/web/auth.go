package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kaa-web/internal/api"
	"kaa-web/internal/middleware"
	"kaa-web/internal/session"
)

// AuthHandlers serves the sign-in and sign-out routes.
type AuthHandlers struct {
	API      *api.Client
	Store    *session.Store
	Registry *registry
}

type loginView struct {
	Phone string
	Err   string
}

// LoginForm GET /login
func (h *AuthHandlers) LoginForm(c *fiber.Ctx) error {
	if middleware.GetSession(c).IsAuthenticated() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return render(c, "login", loginView{})
}

// Login POST /login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	phone := c.FormValue("phone")
	password := c.FormValue("password")

	result, err := h.API.SignIn(c.Context(), "NG", phone, password)
	if err != nil {
		return render(c, "login", loginView{Phone: phone, Err: err.Error()})
	}

	sess := middleware.GetSession(c)
	sess.Token = result.Token
	sess.User = result.User
	sess.Contact = phone
	if err := h.Store.Save(c.Context(), sess); err != nil {
		log.Error().Err(err).Msg("session save after login failed")
		return render(c, "login", loginView{Phone: phone, Err: "Could not start a session"})
	}
	h.Registry.drop(sess.ID)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Logout GET /logout
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	if err := h.Store.Clear(c.Context(), sess.ID); err != nil {
		log.Error().Err(err).Msg("session clear failed")
	}
	h.Registry.drop(sess.ID)
	c.ClearCookie(middleware.SessionCookieName)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
