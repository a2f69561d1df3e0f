package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// StudentService handles business logic for students, including the
// move operation. It needs the room repository for referential checks:
// every non-null room reference must point at an existing room.
type StudentService struct {
	students repository.StudentRepository
	rooms    repository.RoomRepository
	logger   *slog.Logger
}

func NewStudentService(students repository.StudentRepository, rooms repository.RoomRepository, logger *slog.Logger) *StudentService {
	return &StudentService{
		students: students,
		rooms:    rooms,
		logger:   logger,
	}
}

// checkRoomExists translates a room lookup failure into the referential
// error the API contract wants: room_not_found, not a plain not_found.
// A nil room reference is always fine — students may be unassigned.
func (s *StudentService) checkRoomExists(ctx context.Context, room *int) error {
	if room == nil {
		return nil
	}
	_, err := s.rooms.GetByID(ctx, *room)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.RoomNotFound(*room)
	}
	return fmt.Errorf("checking target room: %w", err)
}

func (s *StudentService) validateFields(name string, sex model.Sex) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ValidationFailed("student name is required", map[string]any{"name": "required"})
	}
	if len(name) > MaxNameLength {
		return "", apperror.ValidationFailed(
			fmt.Sprintf("student name must be %d characters or less", MaxNameLength),
			map[string]any{"name": "too long"})
	}
	if !sex.Valid() {
		return "", apperror.ValidationFailed(
			fmt.Sprintf("%q is not a valid sex, expected %q or %q", sex, model.SexMale, model.SexFemale),
			map[string]any{"sex": "invalid choice"})
	}
	return name, nil
}

func (s *StudentService) Create(ctx context.Context, name string, room *int, birthday *model.Timestamp, sex model.Sex) (*model.Student, error) {
	name, err := s.validateFields(name, sex)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoomExists(ctx, room); err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:     name,
		Room:     room,
		Birthday: birthday,
		Sex:      sex,
	}
	if err := s.students.Create(ctx, student); err != nil {
		s.logger.Error("failed to create student",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating student: %w", err)
	}

	s.logger.Info("student created", slog.Int("id", student.ID), slog.String("name", student.Name))
	return student, nil
}

func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

// List returns students in storage order, narrowed by the optional id
// and room membership filters (nil = no filter on that field).
func (s *StudentService) List(ctx context.Context, ids, rooms []int) ([]model.Student, error) {
	students, err := s.students.List(ctx, repository.StudentFilter{IDs: ids, Rooms: rooms})
	if err != nil {
		s.logger.Error("failed to list students", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing students: %w", err)
	}
	return students, nil
}

// Update replaces the student's mutable fields. The id is immutable.
func (s *StudentService) Update(ctx context.Context, id int, name string, room *int, birthday *model.Timestamp, sex model.Sex) (*model.Student, error) {
	name, err := s.validateFields(name, sex)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoomExists(ctx, room); err != nil {
		return nil, err
	}

	student.Name = name
	student.Room = room
	student.Birthday = birthday
	student.Sex = sex
	if err := s.students.Update(ctx, student); err != nil {
		s.logger.Error("failed to update student",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating student: %w", err)
	}

	s.logger.Info("student updated", slog.Int("id", student.ID), slog.String("name", student.Name))
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student deleted", slog.Int("id", id))
	return nil
}

// Move relocates a student to another room.
//
// Order of checks matters for the error contract: a missing student is
// not_found (404) and is reported even when the target room is also
// missing; a missing target room is room_not_found (400). Moving a
// student to the room it is already in is a no-op success — nothing is
// written, the current record is returned as-is.
func (s *StudentService) Move(ctx context.Context, studentID, toRoomID int) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRoomExists(ctx, &toRoomID); err != nil {
		return nil, err
	}

	if student.Room != nil && *student.Room == toRoomID {
		return student, nil
	}

	from := student.Room
	student.Room = &toRoomID
	if err := s.students.Update(ctx, student); err != nil {
		s.logger.Error("failed to move student",
			slog.Int("id", studentID),
			slog.Int("to_room", toRoomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("moving student: %w", err)
	}

	s.logger.Info("student moved",
		slog.Int("id", studentID),
		slog.Any("from_room", from),
		slog.Int("to_room", toRoomID),
	)
	return student, nil
}
