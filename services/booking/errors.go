package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds exposed to callers
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")

	ErrAcceptRaceLost    = fmt.Errorf("%w: booking already accepted by another worker", ErrConflict)
	ErrIllegalTransition = fmt.Errorf("%w: illegal status transition", ErrConflict)
	ErrAlreadyConfirmed  = fmt.Errorf("%w: payment already confirmed by this party", ErrConflict)
	ErrAlreadyReviewed   = fmt.Errorf("%w: booking already reviewed", ErrConflict)
	ErrWorkerBusy        = fmt.Errorf("%w: worker is not available", ErrConflict)
)

// Validationf builds an ErrValidation with a descriptive message
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Kind classifies err into a stable error kind
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// HTTPStatus maps err to a response status code
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
