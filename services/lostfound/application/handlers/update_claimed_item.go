package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	pkgvalidator "github.com/campusfound/campusfound/pkg/validator"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
	domainsvcs "github.com/campusfound/campusfound/services/lostfound/domain/services"
)

// UpdateClaimedRequest is the request body for PUT /items/{id}/update-claimed.
// All fields are optional; the claimedBy block replaces the student contact
// details while the original claim date is preserved.
type UpdateClaimedRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    *string `json:"category"    validate:"omitempty"`
	Location    *string `json:"location"    validate:"omitempty"`
	FoundDate   *string `json:"foundDate"   validate:"omitempty"`

	ClaimedBy *struct {
		StudentName   string `json:"studentName"   validate:"required,min=1,max=100"`
		RollNumber    string `json:"rollNumber"    validate:"required,len=5,numeric"`
		StudyYear     string `json:"studyYear"     validate:"required,oneof='First Year' 'Second Year' 'Third Year' 'Fourth Year'"`
		ContactNumber string `json:"contactNumber" validate:"required,len=10,numeric"`
	} `json:"claimedBy" validate:"omitempty"`
} // @name UpdateClaimedRequest

// UpdateClaimedItemHandler handles PUT /items/{id}/update-claimed requests.
type UpdateClaimedItemHandler struct {
	svc *appsvcs.Services
}

// NewUpdateClaimedItemHandler returns an UpdateClaimedItemHandler backed by
// the given services.
func NewUpdateClaimedItemHandler(svc *appsvcs.Services) *UpdateClaimedItemHandler {
	return &UpdateClaimedItemHandler{svc: svc}
}

// Execute edits a claimed item and/or its student contact details
// (guard only).
//
//	@Summary	Update claimed item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Item ID"
//	@Param		request	body		UpdateClaimedRequest	true	"Fields to update"
//	@Success	200		{object}	ItemResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id}/update-claimed [put]
func (h *UpdateClaimedItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateClaimedRequest](w, r)
	if !ok {
		return
	}

	in := appsvcs.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		FoundDate:   req.FoundDate,
	}

	var student *domainsvcs.StudentEdit
	if req.ClaimedBy != nil {
		student = &domainsvcs.StudentEdit{
			StudentName:   req.ClaimedBy.StudentName,
			RollNumber:    req.ClaimedBy.RollNumber,
			StudyYear:     req.ClaimedBy.StudyYear,
			ContactNumber: req.ClaimedBy.ContactNumber,
		}
	}

	item, err := h.svc.Item.UpdateClaimed(r.Context(), id, in, student)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
