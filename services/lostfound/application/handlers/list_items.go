package handlers

import (
	"net/http"
	"strconv"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
	"github.com/campusfound/campusfound/services/lostfound/domain/repositories"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists items, newest first, optionally filtered by status.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Param		status	query		string	false	"Filter by status (available, claimed, delivered)"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{object}	ItemListResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var opts repositories.QueryOpts

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		opts.Status = &status
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Offset = n
		}
	}

	items, total, err := h.svc.Item.List(r.Context(), opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemListResponse(items, total))
}
