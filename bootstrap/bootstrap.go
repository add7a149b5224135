package bootstrap

import (
	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/config"
	"kaa-web/internal/session"
	"kaa-web/internal/web"
)

// New loads config from the environment and builds the wired Fiber app. Shared
// by cmd/web and anything that wants the app without listening.
func New() (*fiber.App, *session.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	app, store, err := web.CreateApp(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return app, store, cfg, nil
}
