// Package handlers contains one HTTP handler per item endpoint. Handlers
// decode and validate input, call the application service, and map domain
// errors to status codes through errhttp.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusfound/campusfound/pkg/httpx"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
)

// ClaimResponse is the student sub-record attached to claimed and
// delivered items.
type ClaimResponse struct {
	StudentName   string    `json:"studentName"   example:"Asha Verma"`
	RollNumber    string    `json:"rollNumber"    example:"12345"`
	StudyYear     string    `json:"studyYear"     example:"Second Year"`
	ContactNumber string    `json:"contactNumber" example:"9876543210"`
	ClaimedDate   time.Time `json:"claimedDate"   example:"2024-01-20T09:15:00Z"`
} // @name ClaimResponse

// ItemResponse is the wire representation of an item.
type ItemResponse struct {
	ID          uuid.UUID      `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string         `json:"name"        example:"Black Wallet"`
	Description string         `json:"description" example:"Leather wallet found near the library entrance"`
	Category    string         `json:"category"    example:"Accessories"`
	Location    string         `json:"location"    example:"Library"`
	FoundDate   time.Time      `json:"foundDate"   example:"2024-01-15T12:00:00Z"`
	Status      string         `json:"status"      example:"available"`
	Image       string         `json:"image"       example:"/uploads/3f1f9a2e.jpg"`
	ClaimedBy   *ClaimResponse `json:"claimedBy,omitempty"`
	AddedBy     string         `json:"addedBy"     example:"campus_guard"`
	CreatedAt   time.Time      `json:"createdAt"   example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse wraps a page of items with the unpaginated total.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total" example:"42"`
} // @name ItemListResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Name:        item.Name.String(),
		Description: item.Description,
		Category:    item.Category.String(),
		Location:    item.Location.String(),
		FoundDate:   item.FoundDate,
		Status:      item.Status.String(),
		Image:       item.Image,
		AddedBy:     item.AddedBy,
		CreatedAt:   item.CreatedAt,
	}
	if item.ClaimedBy != nil {
		resp.ClaimedBy = &ClaimResponse{
			StudentName:   item.ClaimedBy.StudentName,
			RollNumber:    item.ClaimedBy.RollNumber,
			StudyYear:     item.ClaimedBy.StudyYear.String(),
			ContactNumber: item.ClaimedBy.ContactNumber,
			ClaimedDate:   item.ClaimedBy.ClaimedDate,
		}
	}
	return resp
}

func toItemListResponse(items []*models.Item, total int) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items)), Total: total}
	for _, item := range items {
		out.Items = append(out.Items, toItemResponse(item))
	}
	return out
}

// itemID parses the {id} route parameter. An unparseable id is reported as
// not found so route probing cannot distinguish malformed from missing.
func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "item not found")
		return uuid.Nil, false
	}
	return id, true
}
