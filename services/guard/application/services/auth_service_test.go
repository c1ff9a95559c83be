package services

import (
	"errors"
	"testing"

	"github.com/campusfound/campusfound/services/guard/domain"
)

func TestAuthService_Authenticate(t *testing.T) {
	svc, err := NewAuthService("campus_guard", "correct horse battery staple")
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "campus_guard", "correct horse battery staple", nil},
		{"wrong password", "campus_guard", "guessing", domain.ErrInvalidCredentials},
		{"wrong username", "intruder", "correct horse battery staple", domain.ErrInvalidCredentials},
		{"both wrong", "intruder", "guessing", domain.ErrInvalidCredentials},
		{"empty credentials", "", "", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Authenticate(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_Username(t *testing.T) {
	svc, err := NewAuthService("campus_guard", "pw")
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	if svc.Username() != "campus_guard" {
		t.Fatalf("unexpected username %q", svc.Username())
	}
}
