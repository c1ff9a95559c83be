// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/httpx"
	guarddomain "github.com/campusfound/campusfound/services/guard/domain"
	lostfound "github.com/campusfound/campusfound/services/lostfound/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, lostfound.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, lostfound.ErrClaimConflict),
		errors.Is(err, lostfound.ErrInvalidTransition):
		return http.StatusConflict // 409
	case errors.Is(err, lostfound.ErrValidation),
		errors.Is(err, lostfound.ErrInvalidDateFormat),
		errors.Is(err, lostfound.ErrMissingImage):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, guarddomain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrActorNotFound):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
