// Package handler contains the HTTP layer: request parsing, payload
// validation, and response writing. Handlers never touch the JSON files
// directly — they call services and translate the result to HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/service"
)

// roomRequest is the payload for creating or replacing a room.
// The validate tags are checked with go-playground/validator before the
// service is called; failures come back as validation_error bodies with
// one detail entry per field.
type roomRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// RoomHandler manages CRUD operations for rooms.
type RoomHandler struct {
	service  *service.RoomService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewRoomHandler(svc *service.RoomService, validate *validator.Validate, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		service:  svc,
		validate: validate,
		logger:   logger,
	}
}

// HandleList returns all rooms, optionally filtered by ids__in.
//
// HTTP: GET /api/rooms?ids__in=1,2,3
func (h *RoomHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIntList(r, "ids__in")
	if err != nil {
		writeError(w, err)
		return
	}

	rooms, err := h.service.List(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// HandleCreate creates a new room.
//
// HTTP: POST /api/rooms
// REQUEST BODY: {"name": "Physics"}
func (h *RoomHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid room JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("invalid room data", map[string]any{"body": "malformed JSON"}))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(w, "invalid room data", errs)
			return
		}
		writeError(w, err)
		return
	}

	room, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// HandleGetByID returns a single room.
//
// HTTP: GET /api/rooms/{id}
func (h *RoomHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// HandleUpdate replaces a room's attributes.
//
// HTTP: PUT /api/rooms/{id}
func (h *RoomHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid room JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("invalid room data", map[string]any{"body": "malformed JSON"}))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(w, "invalid room data", errs)
			return
		}
		writeError(w, err)
		return
	}

	room, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// HandleDelete removes a room. Rejected with 409 conflict while any
// student still references the room.
//
// HTTP: DELETE /api/rooms/{id}
func (h *RoomHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStudents lists the students assigned to a room.
//
// HTTP: GET /api/rooms/{id}/students
func (h *RoomHandler) HandleStudents(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	students, err := h.service.Students(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}
