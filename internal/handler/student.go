package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/service"
)

// studentRequest is the payload for creating or replacing a student.
// Room is a pointer: absent or null means "no room assigned", which is
// valid. Birthday uses the model.Timestamp format — a wrong format fails
// JSON decoding, which we report as a validation error.
type studentRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Room     *int             `json:"room"`
	Birthday *model.Timestamp `json:"birthday"`
	Sex      model.Sex        `json:"sex" validate:"omitempty,oneof=M F"`
}

// moveRequest is the payload for POST /api/students/{id}/move.
// ToRoomID is a pointer so that required catches a missing field even
// though 0 would be the zero value of a plain int.
type moveRequest struct {
	ToRoomID *int `json:"to_room_id" validate:"required"`
}

// StudentHandler manages CRUD operations for students plus the move
// operation.
type StudentHandler struct {
	service  *service.StudentService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewStudentHandler(svc *service.StudentService, validate *validator.Validate, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		service:  svc,
		validate: validate,
		logger:   logger,
	}
}

// decodeStudent decodes and validates a student payload, writing the
// error response itself on failure. The bool reports success.
func (h *StudentHandler) decodeStudent(w http.ResponseWriter, r *http.Request) (studentRequest, bool) {
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid student JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("invalid student data", map[string]any{"body": "malformed JSON"}))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(w, "invalid student data", errs)
			return req, false
		}
		writeError(w, err)
		return req, false
	}
	return req, true
}

// HandleList returns all students, filtered by the optional ids__in and
// room__in query parameters.
//
// HTTP: GET /api/students?ids__in=1,2&room__in=3
func (h *StudentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIntList(r, "ids__in")
	if err != nil {
		writeError(w, err)
		return
	}
	rooms, err := parseIntList(r, "room__in")
	if err != nil {
		writeError(w, err)
		return
	}

	students, err := h.service.List(r.Context(), ids, rooms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// HandleCreate creates a new student. If a room is given it must exist,
// otherwise the request fails with room_not_found.
//
// HTTP: POST /api/students
// REQUEST BODY: {"name": "Peggy Ryan", "room": 473, "sex": "M",
//
//	"birthday": "2011-08-22T00:00:00.000000"}
func (h *StudentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStudent(w, r)
	if !ok {
		return
	}

	student, err := h.service.Create(r.Context(), req.Name, req.Room, req.Birthday, req.Sex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// HandleGetByID returns a single student.
//
// HTTP: GET /api/students/{id}
func (h *StudentHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	student, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// HandleUpdate replaces a student's attributes. Same referential check
// as create: a non-null room must exist.
//
// HTTP: PUT /api/students/{id}
func (h *StudentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req, ok := h.decodeStudent(w, r)
	if !ok {
		return
	}

	student, err := h.service.Update(r.Context(), id, req.Name, req.Room, req.Birthday, req.Sex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// HandleDelete removes a student.
//
// HTTP: DELETE /api/students/{id}
func (h *StudentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

// HandleMove relocates a student to another room and returns the updated
// student. Moving to the current room is a no-op success.
//
// HTTP: POST /api/students/{id}/move
// REQUEST BODY: {"to_room_id": 2}
func (h *StudentHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid move JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("invalid move payload", map[string]any{"body": "malformed JSON"}))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			writeValidationError(w, "invalid move payload", errs)
			return
		}
		writeError(w, err)
		return
	}

	student, err := h.service.Move(r.Context(), id, *req.ToRoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}
