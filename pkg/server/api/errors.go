package api

import (
	"encoding/json"
	"net/http"
)

type Error struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Code   string      `json:"code"`
	Title  string      `json:"title"`
	Detail string      `json:"detail"`
	Source ErrorSource `json:"source,omitempty"`
}

type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

func (e Error) Render(w http.ResponseWriter, statuscode int) {
	w.WriteHeader(statuscode)
	json.NewEncoder(w).Encode(e)
}

var InternalServerError = Error{
	ID:     "internal_server_error",
	Code:   "internal_server_error",
	Status: "500",
	Title:  "Internal Server Error",
	Detail: "Something went wrong :(",
}

// InternalError is InternalServerError carrying the text of the error that
// caused it
func InternalError(err error) Error {
	e := InternalServerError
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

var NotFoundError = Error{
	ID:     "resource_not_found",
	Code:   "resource_not_found",
	Status: "404",
	Title:  "Resource Not Found",
	Detail: "The resource you requested could not be found",
}

var PolaroidNotFoundError = Error{
	ID:     "resource_not_found",
	Code:   "resource_not_found",
	Status: "404",
	Title:  "Polaroid Not Found",
	Detail: "The polaroid you specified could not be found",
}

var MissingImageError = Error{
	ID:     "bad_request",
	Code:   "bad_request",
	Status: "400",
	Title:  "Image Upload Failed",
	Detail: "No image file was provided",
	Source: ErrorSource{
		Parameter: "image",
	},
}

// MissingFieldError is rendered when a required form field is empty
func MissingFieldError(field string) Error {
	return Error{
		ID:     "bad_request",
		Code:   "bad_request",
		Status: "400",
		Title:  "Missing Field",
		Detail: "The " + field + " field is required",
		Source: ErrorSource{
			Parameter: field,
		},
	}
}

var InvalidFormError = Error{
	ID:     "bad_request",
	Code:   "bad_request",
	Status: "400",
	Title:  "Invalid Form",
	Detail: "Your multipart form is malformed or too large",
}

var InvalidJSONError = Error{
	ID:     "bad_request",
	Code:   "bad_request",
	Status: "400",
	Title:  "Invalid JSON",
	Detail: "Your JSON is malformed",
}
