// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/qanda/internal/shared"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// ErrMalformedBody is returned when a request body cannot be decoded or validated.
var ErrMalformedBody = shared.NewError(shared.KindInvalidInput, "cannot deserialize request body")

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON decodes the request body into target and runs struct validation on it.
// Both failures are reported as ErrMalformedBody.
func DecodeJSON(r *http.Request, v *validator.Validate, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return shared.Wrap(shared.KindInvalidInput, ErrMalformedBody.Msg, err)
	}
	return validate(v, target)
}

// DecodeForm parses a urlencoded body, lets fill copy fields into target, then validates it.
func DecodeForm(r *http.Request, v *validator.Validate, target any, fill func(get func(string) string)) error {
	if err := r.ParseForm(); err != nil {
		return shared.Wrap(shared.KindInvalidInput, ErrMalformedBody.Msg, err)
	}
	fill(r.PostForm.Get)
	return validate(v, target)
}

func validate(v *validator.Validate, target any) error {
	if v == nil {
		return nil
	}
	if err := v.Struct(target); err != nil {
		return shared.Wrap(shared.KindInvalidInput, ErrMalformedBody.Msg, err)
	}
	return nil
}
