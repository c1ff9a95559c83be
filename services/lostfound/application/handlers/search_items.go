package handlers

import (
	"net/http"
	"strings"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// SearchItemsHandler handles GET /items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute searches items by free-text term across name, description,
// category, and location.
//
//	@Summary	Search items
//	@Tags		items
//	@Produce	json
//	@Param		q	query		string	false	"Search term"
//	@Success	200	{object}	ItemListResponse
//	@Router		/items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.svc.Item.Search(r.Context(), term)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemListResponse(items, len(items)))
}
