package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/gamerhub/marketplace/internal/api/http/handlers"
	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Sessions  *handlers.SessionHandler
	Listings  *handlers.ListingsHandler
	Boosts    *handlers.BoostsHandler
	Dashboard *handlers.DashboardHandler
	Guard     *auth.SessionGuard
	Metrics   *observability.Metrics
	LoginPath string
}

// RegisterRoutes installs the session guard and wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	app.Get(loginPath, cfg.Sessions.LoginPage)

	dashboard := app.Group("/dashboard")
	dashboard.Get("/profile", cfg.Dashboard.Profile)
	dashboard.Get("/wallet", cfg.Dashboard.Wallet)

	api := app.Group("/api", cfg.Guard.Authenticate)
	requireIdentity := auth.RequireIdentity()

	authGroup := api.Group("/auth")
	authGroup.Get("/me", cfg.Sessions.Me)
	authGroup.Post("/logout", cfg.Sessions.Logout)
	authGroup.Post("/register", cfg.Sessions.Register)
	authGroup.Post("/login", cfg.Sessions.Login)

	api.Get("/listings", cfg.Listings.List)
	api.Post("/listings", requireIdentity, cfg.Listings.Create)
	api.Get("/listings/:id", cfg.Listings.Get)
	api.Get("/listings/:id/feedback", cfg.Listings.ListFeedback)
	api.Post("/listings/:id/feedback", requireIdentity, cfg.Listings.CreateFeedback)
	api.Get("/purchases/:listingId/status", requireIdentity, cfg.Listings.PurchaseStatus)

	api.Post("/boosts", requireIdentity, cfg.Boosts.Create)
	api.Get("/boosts/:id", cfg.Boosts.Get)
	api.Post("/boosts/:id/close", requireIdentity, cfg.Boosts.Close)
	api.Get("/boosts/:id/bids", cfg.Boosts.ListBids)
	api.Post("/boosts/:id/bids", requireIdentity, cfg.Boosts.PlaceBid)
}
