package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// UpdateItemHandler handles PUT /items/{id} requests.
type UpdateItemHandler struct {
	svc *appsvcs.Services
}

// NewUpdateItemHandler returns an UpdateItemHandler backed by the given services.
func NewUpdateItemHandler(svc *appsvcs.Services) *UpdateItemHandler {
	return &UpdateItemHandler{svc: svc}
}

// Execute edits an available item (guard only). Fields absent from the form
// are left unchanged; an uploaded image replaces the current photo.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id			path		string	true	"Item ID"
//	@Param		name		formData	string	false	"Item name"
//	@Param		description	formData	string	false	"Item description"
//	@Param		category	formData	string	false	"Category"
//	@Param		location	formData	string	false	"Location found"
//	@Param		foundDate	formData	string	false	"Date found (DD-MM-YYYY)"
//	@Param		image		formData	file	false	"Replacement photo"
//	@Success	200			{object}	ItemResponse
//	@Failure	401			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Failure	422			{object}	ErrorResponse
//	@Router		/items/{id} [put]
func (h *UpdateItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := appsvcs.UpdateItemInput{
		Name:        formField(r, "name"),
		Description: formField(r, "description"),
		Category:    formField(r, "category"),
		Location:    formField(r, "location"),
		FoundDate:   formField(r, "foundDate"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		in.ImageFilename = header.Filename
		in.ImageData = file
	}

	item, err := h.svc.Item.UpdateAvailable(r.Context(), id, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// formField returns a pointer to the form value when the field was present
// in the request, nil when it was omitted entirely.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
