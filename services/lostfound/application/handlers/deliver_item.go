package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// DeliverItemHandler handles PUT /items/{id}/delivered requests.
type DeliverItemHandler struct {
	svc *appsvcs.Services
}

// NewDeliverItemHandler returns a DeliverItemHandler backed by the given services.
func NewDeliverItemHandler(svc *appsvcs.Services) *DeliverItemHandler {
	return &DeliverItemHandler{svc: svc}
}

// Execute marks a claimed item as handed over (guard only).
//
//	@Summary	Mark item delivered
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/items/{id}/delivered [put]
func (h *DeliverItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Deliver(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
