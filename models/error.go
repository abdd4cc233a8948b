package models

import "errors"

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// HealthCheckResponse is the body served by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// ValidationError rejects a malformed write before anything is persisted
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError returns a new ValidationError
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError reports a reference to a document that does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string { return e.Resource + " " + e.ID + " not found" }

// NewNotFoundError returns a new NotFoundError
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// PermissionDeniedError reports a caller whose relation lacks the required
// flag, or who has no active relation at all
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string { return e.Message }

// NewPermissionDeniedError returns a new PermissionDeniedError
func NewPermissionDeniedError(message string) error {
	return &PermissionDeniedError{Message: message}
}

// ConflictError reports a duplicate relation request or exhausted write
// contention; callers may retry after backoff
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError returns a new ConflictError
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsPermissionDenied reports whether err is a PermissionDeniedError
func IsPermissionDenied(err error) bool {
	var e *PermissionDeniedError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
