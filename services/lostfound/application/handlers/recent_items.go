package handlers

import (
	"net/http"
	"strconv"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// maxRecentLimit caps the ?limit= parameter on the recent-items endpoint.
const maxRecentLimit = 50

// RecentItemsHandler handles GET /items/recent requests.
type RecentItemsHandler struct {
	svc          *appsvcs.Services
	defaultLimit int
}

// NewRecentItemsHandler returns a RecentItemsHandler that serves defaultLimit
// items when the request does not specify a limit.
func NewRecentItemsHandler(svc *appsvcs.Services, defaultLimit int) *RecentItemsHandler {
	return &RecentItemsHandler{svc: svc, defaultLimit: defaultLimit}
}

// Execute returns the most recently registered items, newest first.
//
//	@Summary	Recent items
//	@Tags		items
//	@Produce	json
//	@Param		limit	query		int	false	"Number of items (max 50)"
//	@Success	200		{object}	ItemListResponse
//	@Router		/items/recent [get]
func (h *RecentItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	items, err := h.svc.Item.Recent(r.Context(), limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemListResponse(items, len(items)))
}
