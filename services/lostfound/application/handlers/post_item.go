package handlers

import (
	"net/http"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/errhttp"
	"github.com/campusfound/campusfound/pkg/httpx"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
)

// maxUploadBytes bounds the multipart form size for item photos.
const maxUploadBytes = 10 << 20 // 10 MiB

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute registers a found item with its photo.
//
//	@Summary		Register found item
//	@Description	Registers a new found item with photo upload (guard only)
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Item name"
//	@Param			description	formData	string	false	"Item description"
//	@Param			category	formData	string	true	"Category"
//	@Param			location	formData	string	true	"Location found"
//	@Param			foundDate	formData	string	true	"Date found (DD-MM-YYYY)"
//	@Param			image		formData	file	true	"Item photo"
//	@Success		201			{object}	ItemResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := appsvcs.CreateItemInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		FoundDate:   r.FormValue("foundDate"),
		AddedBy:     actor.Username,
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		in.ImageFilename = header.Filename
		in.ImageData = file
	}

	item, err := h.svc.Item.Create(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
