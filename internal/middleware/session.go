package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kaa-web/internal/session"
)

const (
	// SessionCookieName carries the session id; the token itself never leaves
	// the server.
	SessionCookieName = "kaa.sid"
	sessionLocal      = "session"
)

// Session loads the browser session from Redis into Locals, minting an id and
// cookie for first-time visitors. Handlers that mutate the session save it
// through the store themselves.
func Session(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookieName)
		if id == "" {
			id = session.NewID()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(store.TTL.Seconds()),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		sess, err := store.Load(c.Context(), id)
		if err != nil {
			log.Error().Err(err).Str("trace_id", GetTraceID(c)).Msg("session load failed")
			sess = &session.Session{ID: id}
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// GetSession returns the session placed in Locals by the Session middleware.
func GetSession(c *fiber.Ctx) *session.Session {
	if s, ok := c.Locals(sessionLocal).(*session.Session); ok {
		return s
	}
	return &session.Session{}
}

// RequireAuth redirects unauthenticated browsers to the login screen. Mounted
// only on protected routes, so the login screen itself is never redirected.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetSession(c).IsAuthenticated() {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
