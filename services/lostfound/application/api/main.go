package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/campusfound/campusfound/pkg/app"
	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/config"
	"github.com/campusfound/campusfound/services/lostfound/application/handlers"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
// Browse and claim routes are public; registration and lifecycle
// management require a guard session.
func ItemRoutes(r chi.Router, a *app.Application, cfg *config.Config) {
	svcs := appsvcs.New(a)

	r.Route("/items", func(r chi.Router) {
		// Public: students browse, search, and claim.
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Get("/recent", handlers.NewRecentItemsHandler(svcs, cfg.RecentItemsLimit).Execute)
		r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
		r.Get("/statistics", handlers.NewGetStatisticsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
		r.Put("/{id}/claim", handlers.NewClaimItemHandler(svcs).Execute)

		// Guard-only lifecycle management.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireGuard(a.SessionStore, a.Logger))
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewUpdateItemHandler(svcs).Execute)
			r.Put("/{id}/delivered", handlers.NewDeliverItemHandler(svcs).Execute)
			r.Put("/{id}/update-claimed", handlers.NewUpdateClaimedItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
	})
}
