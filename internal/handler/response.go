package handler

// RESPONSE HELPERS:
// Every error response from this API has the same shape:
//
//	{"code": "not_found", "message": "room not found with id 7", "details": {...}}
//
// code is machine-readable and stable; message is for humans; details
// (optional) carries per-field context such as which query parameter
// failed to parse. Handlers never build these bodies by hand — they call
// writeError and the mapping from domain error to status code and code
// string lives in exactly one place.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/students-rooms-api/internal/apperror"
)

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
// Headers must be set before WriteHeader, and WriteHeader before the
// body — once bytes are written the headers are locked.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point — logging is all we can do.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status and body.
//
// The service layer returns apperror values; this is the single place
// they become HTTP. errors.Is walks the wrap chain, so services are free
// to wrap repository errors with fmt.Errorf("...: %w", err) and the
// sentinel still matches.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		code := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			code = "validation_error"
		case errors.Is(err, apperror.ErrRoomNotFound):
			// Referential failure: the REQUEST named a bad room, so this
			// is a 400, unlike a missing addressed resource (404 below).
			status = http.StatusBadRequest
			code = "room_not_found"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			code = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			code = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Code:    code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	// Unknown error — generic 500. Never leak internal detail (file
	// paths, raw decode errors) to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "internal_error",
		Message: "an internal error occurred",
	})
}

// writeValidationError converts go-playground/validator failures on a
// request payload into the standard error body, one detail entry per
// failing field.
func writeValidationError(w http.ResponseWriter, message string, errs validator.ValidationErrors) {
	details := make(map[string]any, len(errs))
	for _, e := range errs {
		field := e.Field()
		switch e.ActualTag() {
		case "required":
			details[field] = "this field is required"
		case "max":
			details[field] = fmt.Sprintf("must be %s characters or less", e.Param())
		case "oneof":
			details[field] = fmt.Sprintf("must be one of: %s", e.Param())
		default:
			details[field] = "invalid value"
		}
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    "validation_error",
		Message: message,
		Details: details,
	})
}
