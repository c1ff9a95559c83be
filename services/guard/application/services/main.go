package services

import (
	"github.com/campusfound/campusfound/pkg/config"
)

// Services is the application-layer service container for the guard context.
type Services struct {
	Auth *AuthService
}

// New wires the guard services from configuration. The single guard account
// is configured, not stored in the database.
func New(cfg *config.Config) (*Services, error) {
	authSvc, err := NewAuthService(cfg.GuardUsername, cfg.GuardPassword)
	if err != nil {
		return nil, err
	}
	return &Services{Auth: authSvc}, nil
}
