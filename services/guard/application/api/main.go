package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/campusfound/campusfound/pkg/app"
	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/config"
	"github.com/campusfound/campusfound/services/guard/application/handlers"
	appsvcs "github.com/campusfound/campusfound/services/guard/application/services"
)

// GuardRoutes registers the guard session endpoints on the provided chi
// router.
func GuardRoutes(r chi.Router, a *app.Application, cfg *config.Config) error {
	svcs, err := appsvcs.New(cfg)
	if err != nil {
		return fmt.Errorf("guard services: %w", err)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handlers.NewPostLoginHandler(svcs, a.SessionStore).Execute)
		r.Post("/logout", handlers.NewPostLogoutHandler(a.SessionStore).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireGuard(a.SessionStore, a.Logger))
			r.Get("/me", handlers.NewGetMeHandler().Execute)
		})
	})
	return nil
}
