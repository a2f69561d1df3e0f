package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
)

// AppError is the application's error type. Details carries per-field
// context (e.g. which query parameter failed to parse) and ends up in
// the error response body verbatim.
type AppError struct {
	Err     error          // sentinel cause, checked with errors.Is
	Message string         // Human-readable error message
	Details map[string]any // Optional: per-field error context
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// RoomNotFound reports a referential failure: an operation named a target
// room that does not exist. Distinct from NotFound because the HTTP layer
// maps it to 400 with code "room_not_found" — the request itself is bad,
// not the addressed resource.
func RoomNotFound(id int) *AppError {
	return &AppError{
		Err:     ErrRoomNotFound,
		Message: fmt.Sprintf("target room %d does not exist", id),
	}
}

func ValidationFailed(message string, details map[string]any) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Details: details,
	}
}

// Conflict reports a state conflict, e.g. deleting a room that students
// still reference. HTTP handlers map this to 409.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}
