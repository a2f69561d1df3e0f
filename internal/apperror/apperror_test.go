package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("room", 7),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "RoomNotFound wraps ErrRoomNotFound",
			err:       RoomNotFound(7),
			target:    ErrRoomNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name is required", nil),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("room 7 still has 2 students assigned"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "RoomNotFound does NOT match ErrNotFound",
			err:       RoomNotFound(7),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("student", 3),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("room", 42),
			wantMessage: "room not found with id 42",
		},
		{
			name:        "RoomNotFound message names the target room",
			err:         RoomNotFound(42),
			wantMessage: "target room 42 does not exist",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("room name is required", nil),
			wantMessage: "room name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("student", 3)
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedDetails(t *testing.T) {
	// Details end up in the HTTP error body verbatim — the frontend uses
	// them to tell WHICH parameter was invalid.
	err := ValidationFailed("invalid query parameter ids__in",
		map[string]any{"ids__in": "expected comma-separated integers"})

	if err.Details["ids__in"] != "expected comma-separated integers" {
		t.Errorf("Details[ids__in] = %v, want expected comma-separated integers", err.Details["ids__in"])
	}
}
