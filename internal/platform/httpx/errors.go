package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	// ErrNotFound indicates that neither identifier lookup matched a record.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a uniqueness constraint violation in storage.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates a required-field or payload validation failure.
	ErrValidation = errors.New("validation failed")
)

// RespondError maps domain errors to HTTP status codes. Uniqueness
// violations are reported as validation failures (400), missing records
// as 404, anything else as an opaque storage error (500).
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
