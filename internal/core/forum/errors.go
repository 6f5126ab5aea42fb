package forum

import (
	"errors"
	"fmt"
)

// ErrScreenClosed is returned when a load or mutation result targets a screen that was torn down
var ErrScreenClosed = errors.New("screen closed")

// ValidationError represents bad input caught before any side effect
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// MediaUploadError represents a failed upload or URL resolution of a chosen image.
// No post record is written when this is returned.
type MediaUploadError struct {
	Err error
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("media upload failed: %v", e.Err)
}

func (e *MediaUploadError) Unwrap() error { return e.Err }

// IsMediaUploadError checks if error is a media upload error
func IsMediaUploadError(err error) bool {
	var mediaErr *MediaUploadError
	return errors.As(err, &mediaErr)
}

// StoreReadError wraps a repository failure while reading
type StoreReadError struct {
	Err error
	Op  string
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read failed (%s): %v", e.Op, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// IsStoreReadError checks if error is a store read error
func IsStoreReadError(err error) bool {
	var readErr *StoreReadError
	return errors.As(err, &readErr)
}

// StoreWriteError wraps a repository failure while writing
type StoreWriteError struct {
	Err error
	Op  string
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed (%s): %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// IsStoreWriteError checks if error is a store write error
func IsStoreWriteError(err error) bool {
	var writeErr *StoreWriteError
	return errors.As(err, &writeErr)
}

// CascadeDeleteError is returned when a post's comments could not be removed.
// The post itself is left in place.
type CascadeDeleteError struct {
	Err    error
	PostID int64
}

func (e *CascadeDeleteError) Error() string {
	return fmt.Sprintf("failed to delete comments of post %d: %v", e.PostID, e.Err)
}

func (e *CascadeDeleteError) Unwrap() error { return e.Err }

// IsCascadeDeleteError checks if error is a cascade delete error
func IsCascadeDeleteError(err error) bool {
	var cascadeErr *CascadeDeleteError
	return errors.As(err, &cascadeErr)
}

// NotFoundError represents an operation addressed to an absent entity
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, id int64) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}
