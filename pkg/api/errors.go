package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gamenight/attendance/pkg/db"
)

// DomainError standardizes errors returned by the API
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, details map[string]any) error {
	return &DomainError{Code: "VALIDATION_FAILED", Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewQueryFailed reports that the backing store could not be read
func NewQueryFailed(err error) error {
	return &DomainError{
		Code:       "QUERY_FAILED",
		Message:    "failed to load attendance data",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts any error to a DomainError
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return &DomainError{Code: "NOT_FOUND", Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
		case fiber.StatusBadRequest:
			return &DomainError{Code: "VALIDATION_FAILED", Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
		default:
			return &DomainError{Code: "HTTP_ERROR", Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
		}
	}

	switch {
	case db.IsNotFound(err):
		return NewNotFound("resource", nil).(*DomainError)
	case db.IsQueryError(err):
		return NewQueryFailed(err).(*DomainError)
	}

	return NewInternalError(err).(*DomainError)
}
