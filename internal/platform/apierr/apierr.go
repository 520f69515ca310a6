package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError converts a service error into an HTTP error. fallback is used as
// the code when err carries no aggregate code.
func FromError(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, types.ErrDuplicateMember):
		return New(http.StatusConflict, "duplicate_member", err)
	case errors.Is(err, types.ErrInsufficientStock):
		return New(http.StatusUnprocessableEntity, "insufficient_stock", err)
	}

	code := domainagg.CodeOf(err)
	switch code {
	case domainagg.CodeValidation:
		return New(http.StatusBadRequest, string(code), err)
	case domainagg.CodeNotFound:
		return New(http.StatusNotFound, string(code), err)
	case domainagg.CodeConflict, domainagg.CodePreconditionFailed:
		return New(http.StatusConflict, string(code), err)
	case domainagg.CodeInvariantViolation:
		return New(http.StatusUnprocessableEntity, string(code), err)
	case domainagg.CodeRetryable:
		return New(http.StatusServiceUnavailable, string(code), err)
	case domainagg.CodeInternal:
		return New(http.StatusInternalServerError, string(code), err)
	}
	if fallback == "" {
		fallback = "internal"
	}
	return New(http.StatusInternalServerError, fallback, err)
}
