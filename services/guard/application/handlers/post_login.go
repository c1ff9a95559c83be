// Package handlers contains the guard session endpoints.
package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	pkgvalidator "github.com/campusfound/campusfound/pkg/validator"
	appsvcs "github.com/campusfound/campusfound/services/guard/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"campus_guard"`
	Password string `json:"password" validate:"required" example:"********"`
} // @name LoginRequest

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Username string `json:"username" example:"campus_guard"`
	Role     string `json:"role"     example:"guard"`
} // @name LoginResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
} // @name GuardErrorResponse

// PostLoginHandler handles POST /auth/login requests.
type PostLoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given
// services and session store.
func NewPostLoginHandler(svc *appsvcs.Services, store sessions.Store) *PostLoginHandler {
	return &PostLoginHandler{svc: svc, store: store}
}

// Execute authenticates the guard and starts a session.
//
//	@Summary	Guard login
//	@Tags		guard
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/login [post]
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Auth.Authenticate(req.Username, req.Password); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	session, err := h.store.Get(r, auth.SessionName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session value map.
		session, _ = h.store.New(r, auth.SessionName)
	}
	session.Values[auth.SessionUsernameKey] = req.Username
	session.Values[auth.SessionRoleKey] = auth.RoleGuard
	if err := session.Save(r, w); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{Username: req.Username, Role: auth.RoleGuard})
}
