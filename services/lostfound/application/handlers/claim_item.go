package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	pkgvalidator "github.com/campusfound/campusfound/pkg/validator"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// ClaimItemRequest is the request body for PUT /items/{id}/claim.
type ClaimItemRequest struct {
	StudentName   string `json:"studentName"   validate:"required,min=1,max=100"                                          example:"Asha Verma"`
	RollNumber    string `json:"rollNumber"    validate:"required,len=5,numeric"                                          example:"12345"`
	StudyYear     string `json:"studyYear"     validate:"required,oneof='First Year' 'Second Year' 'Third Year' 'Fourth Year'" example:"Second Year"`
	ContactNumber string `json:"contactNumber" validate:"required,len=10,numeric"                                         example:"9876543210"`
} // @name ClaimItemRequest

// ClaimItemHandler handles PUT /items/{id}/claim requests.
type ClaimItemHandler struct {
	svc *appsvcs.Services
}

// NewClaimItemHandler returns a ClaimItemHandler backed by the given services.
func NewClaimItemHandler(svc *appsvcs.Services) *ClaimItemHandler {
	return &ClaimItemHandler{svc: svc}
}

// Execute claims an available item for a student. The write is conditional
// on the item still being available, so concurrent claimants get a clean
// conflict instead of overwriting each other.
//
//	@Summary	Claim item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Item ID"
//	@Param		request	body		ClaimItemRequest	true	"Student details"
//	@Success	200		{object}	ItemResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id}/claim [put]
func (h *ClaimItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ClaimItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Claim(r.Context(), id, appsvcs.ClaimInput{
		StudentName:   req.StudentName,
		RollNumber:    req.RollNumber,
		StudyYear:     req.StudyYear,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
