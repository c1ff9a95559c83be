package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/httpx"
)

// PostLogoutHandler handles POST /auth/logout requests.
type PostLogoutHandler struct {
	store sessions.Store
}

// NewPostLogoutHandler returns a PostLogoutHandler backed by the given
// session store.
func NewPostLogoutHandler(store sessions.Store) *PostLogoutHandler {
	return &PostLogoutHandler{store: store}
}

// Execute ends the guard session. Logging out without a session succeeds.
//
//	@Summary	Guard logout
//	@Tags		guard
//	@Produce	json
//	@Success	204
//	@Router		/auth/logout [post]
func (h *PostLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, auth.SessionName)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "could not end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
