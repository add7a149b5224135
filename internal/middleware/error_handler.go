package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kaa-web/internal/api"
)

// ErrorHandler is the global error handler. A 401 from the upstream API means
// the stored token is dead, so the browser goes back to the login screen;
// anything else renders a plain error page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("unhandled error")
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(code).SendString("<h1>" + message + "</h1>")
}
