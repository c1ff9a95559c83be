package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
)

// GetMeHandler handles GET /auth/me requests.
type GetMeHandler struct{}

// NewGetMeHandler returns a GetMeHandler.
func NewGetMeHandler() *GetMeHandler {
	return &GetMeHandler{}
}

// Execute returns the authenticated guard identity. The dashboard calls
// this on load to decide whether a login is needed.
//
//	@Summary	Current guard session
//	@Tags		guard
//	@Produce	json
//	@Success	200	{object}	LoginResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/me [get]
func (h *GetMeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{Username: actor.Username, Role: actor.Role})
}
