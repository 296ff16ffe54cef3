package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/teammatch/internal/matching"
)

// ErrNotFound indicates a stored record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrForbidden indicates the caller may not act on a record
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	return "forbidden: " + e.Reason
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an ErrValidation naming
// the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return &ErrValidation{Field: ve.Namespace(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		forbidden  *ErrForbidden
		validation *ErrValidation
		scoreErr   *matching.ScoreError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validation), errors.Is(err, matching.ErrNilRecord):
		return http.StatusBadRequest
	case errors.As(err, &scoreErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
