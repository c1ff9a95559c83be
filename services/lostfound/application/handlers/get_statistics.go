package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// StatisticsResponse is the per-status breakdown for the dashboard.
type StatisticsResponse struct {
	Total     int `json:"total"     example:"42"`
	Available int `json:"available" example:"30"`
	Claimed   int `json:"claimed"   example:"7"`
	Delivered int `json:"delivered" example:"5"`
} // @name StatisticsResponse

// GetStatisticsHandler handles GET /items/statistics requests.
type GetStatisticsHandler struct {
	svc *appsvcs.Services
}

// NewGetStatisticsHandler returns a GetStatisticsHandler backed by the given services.
func NewGetStatisticsHandler(svc *appsvcs.Services) *GetStatisticsHandler {
	return &GetStatisticsHandler{svc: svc}
}

// Execute returns item counts per status.
//
//	@Summary	Item statistics
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	StatisticsResponse
//	@Router		/items/statistics [get]
func (h *GetStatisticsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Item.GetStatistics(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, StatisticsResponse{
		Total:     stats.Total,
		Available: stats.Available,
		Claimed:   stats.Claimed,
		Delivered: stats.Delivered,
	})
}
