package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/campusfound/campusfound/pkg/auth"
	appsvcs "github.com/campusfound/campusfound/services/guard/application/services"
)

func newGuardRouter(t *testing.T) (chi.Router, sessions.Store) {
	t.Helper()
	svc, err := NewTestServices()
	if err != nil {
		t.Fatalf("guard services: %v", err)
	}
	store := sessions.NewCookieStore([]byte("test-session-key-32-bytes-long!!"))

	r := chi.NewRouter()
	r.Post("/auth/login", NewPostLoginHandler(svc, store).Execute)
	r.Post("/auth/logout", NewPostLogoutHandler(store).Execute)
	return r, store
}

// NewTestServices builds a Services container with fixed test credentials.
func NewTestServices() (*appsvcs.Services, error) {
	authSvc, err := appsvcs.NewAuthService("campus_guard", "hunter2 with entropy")
	if err != nil {
		return nil, err
	}
	return &appsvcs.Services{Auth: authSvc}, nil
}

func TestPostLogin(t *testing.T) {
	t.Run("valid credentials start a session", func(t *testing.T) {
		r, _ := newGuardRouter(t)
		body := strings.NewReader(`{"username":"campus_guard","password":"hunter2 with entropy"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Username != "campus_guard" || resp.Role != auth.RoleGuard {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if len(w.Result().Cookies()) == 0 {
			t.Fatal("expected a session cookie")
		}
	})

	t.Run("wrong credentials are rejected", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"wrong password", `{"username":"campus_guard","password":"guessing"}`},
			{"wrong username", `{"username":"admin","password":"hunter2 with entropy"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r, _ := newGuardRouter(t)
				req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", w.Code)
				}
				if len(w.Result().Cookies()) != 0 {
					t.Fatal("failed login must not set a session cookie")
				}
			})
		}
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		r, _ := newGuardRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"campus_guard"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestPostLogout(t *testing.T) {
	t.Run("ends an active session", func(t *testing.T) {
		r, _ := newGuardRouter(t)

		login := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"campus_guard","password":"hunter2 with entropy"}`))
		loginW := httptest.NewRecorder()
		r.ServeHTTP(loginW, login)
		if loginW.Code != http.StatusOK {
			t.Fatalf("login: %d", loginW.Code)
		}

		logout := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		for _, c := range loginW.Result().Cookies() {
			logout.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, logout)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.SessionName && c.MaxAge >= 0 {
				t.Fatalf("session cookie not expired: MaxAge=%d", c.MaxAge)
			}
		}
	})

	t.Run("logout without a session succeeds", func(t *testing.T) {
		r, _ := newGuardRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestGetMe(t *testing.T) {
	t.Run("returns the session identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		ctx := auth.WithActor(req.Context(), auth.Actor{Username: "campus_guard", Role: auth.RoleGuard})
		w := httptest.NewRecorder()
		NewGetMeHandler().Execute(w, req.WithContext(ctx))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Username != "campus_guard" || resp.Role != auth.RoleGuard {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		NewGetMeHandler().Execute(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
