package web

import (
	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/api"
	"kaa-web/internal/config"
	"kaa-web/internal/middleware"
	"kaa-web/internal/session"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned session store is exposed so callers can ping
// Redis at startup.
func CreateApp(cfg *config.Config) (*fiber.App, *session.Store, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             int(cfg.MaxUploadBytes)*(cfg.MaxImageCount+1) + (1 << 20),
	})

	store, err := session.NewStore(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		return nil, nil, err
	}

	client := api.New(cfg.APIBaseURL)
	reg := newRegistry(cfg, client)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Session(store))

	// --- Routes (no auth) ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusSeeOther)
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHandlers := &AuthHandlers{API: client, Store: store, Registry: reg}
	app.Get("/login", authHandlers.LoginForm)
	app.Post("/login", authHandlers.Login)
	app.Get("/logout", authHandlers.Logout)

	// --- Protected screens ---
	browseHandlers := &BrowseHandlers{Registry: reg}
	dash := app.Group("/dashboard", middleware.RequireAuth())
	dash.Get("/", browseHandlers.Dashboard)
	dash.Get("/search", browseHandlers.SearchInput)
	dash.Get("/results", browseHandlers.Results)

	propertyHandlers := &PropertyHandlers{API: client}
	prop := app.Group("/property", middleware.RequireAuth())
	prop.Get("/:id", propertyHandlers.Detail)
	prop.Post("/:id/favorite", propertyHandlers.ToggleFavorite)

	listingHandlers := &ListingHandlers{Registry: reg, MaxImages: cfg.MaxImageCount}
	lp := app.Group("/list-property", middleware.RequireAuth())
	lp.Get("/", listingHandlers.Page)
	lp.Post("/", listingHandlers.Submit)
	lp.Post("/upload", listingHandlers.Upload)
	lp.Post("/remove", listingHandlers.Remove)

	favoritesHandlers := &FavoritesHandlers{API: client}
	app.Get("/favorites", middleware.RequireAuth(), favoritesHandlers.Page)

	myPropsHandlers := &MyPropertiesHandlers{API: client}
	mine := app.Group("/my-properties", middleware.RequireAuth())
	mine.Get("/", myPropsHandlers.Page)
	mine.Post("/:id/delete", myPropsHandlers.Delete)

	profileHandlers := &ProfileHandlers{Registry: reg}
	profile := app.Group("/profile", middleware.RequireAuth())
	profile.Get("/", profileHandlers.Page)
	profile.Post("/convert", profileHandlers.Convert)

	return app, store, nil
}
