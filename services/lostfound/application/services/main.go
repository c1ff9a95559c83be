package services

import (
	"github.com/campusfound/campusfound/pkg/app"
	"github.com/campusfound/campusfound/pkg/cache"
	"github.com/campusfound/campusfound/services/lostfound/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all lost & found application services with infrastructure from
// the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	itemCache := cache.NewItemCache(a.Redis)
	return &Services{
		Item: NewItemService(repo, itemCache, a.Images, a.Logger),
	}
}
