// Package httpx provides HTTP response utilities.
package httpx

import (
	"net/http"

	"github.com/noah-isme/qanda/internal/shared"
)

type rendering struct {
	status int
	title  string
	// detail exposes the error message to the client.
	detail bool
}

var renderings = map[shared.Kind]rendering{
	shared.KindInvalidInput:       {http.StatusUnprocessableEntity, "Invalid Input", true},
	shared.KindInvalidCredentials: {http.StatusUnprocessableEntity, "Invalid Credentials", false},
	shared.KindConflict:           {http.StatusConflict, "Conflict", true},
	shared.KindUnauthorized:       {http.StatusUnauthorized, "Unauthorized", false},
	shared.KindForbidden:          {http.StatusForbidden, "Forbidden", false},
	shared.KindNotFound:           {http.StatusNotFound, "Not Found", false},
	shared.KindBadRequest:         {http.StatusBadRequest, "Bad Request", true},
	shared.KindUpstream:           {http.StatusBadGateway, "Upstream Error", false},
	shared.KindInternal:           {http.StatusInternalServerError, "Internal Error", false},
}

// StatusFor reports the status code RespondError would use for err.
func StatusFor(err error) int {
	return renderingFor(err).status
}

// RespondError maps classified errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	r := renderingFor(err)
	detail := ""
	if r.detail {
		detail = err.Error()
	}
	Problem(w, r.status, r.title, detail)
}

func renderingFor(err error) rendering {
	r, ok := renderings[shared.KindOf(err)]
	if !ok {
		return renderings[shared.KindInternal]
	}
	return r
}
