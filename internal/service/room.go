// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services enforce the rules
// (name constraints, referential integrity, the room-deletion policy);
// repositories read and write the JSON files. Services depend only on
// the repository interfaces, so they can be tested with in-memory mocks
// and never import the jsonfile package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// MaxNameLength bounds room and student names.
const MaxNameLength = 255

// RoomService handles business logic for rooms.
// It holds BOTH repositories: the deletion policy needs to know whether
// any student still references the room being deleted.
type RoomService struct {
	rooms    repository.RoomRepository
	students repository.StudentRepository
	logger   *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, students repository.StudentRepository, logger *slog.Logger) *RoomService {
	return &RoomService{
		rooms:    rooms,
		students: students,
		logger:   logger,
	}
}

func (s *RoomService) Create(ctx context.Context, name string) (*model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("room name is required", map[string]any{"name": "required"})
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed(
			fmt.Sprintf("room name must be %d characters or less", MaxNameLength),
			map[string]any{"name": "too long"})
	}

	room := &model.Room{Name: name}
	if err := s.rooms.Create(ctx, room); err != nil {
		s.logger.Error("failed to create room",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating room: %w", err)
	}

	s.logger.Info("room created", slog.Int("id", room.ID), slog.String("name", room.Name))
	return room, nil
}

func (s *RoomService) GetByID(ctx context.Context, id int) (*model.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// List returns rooms in storage order, optionally filtered to a set of
// ids. A nil ids slice means no filter.
func (s *RoomService) List(ctx context.Context, ids []int) ([]model.Room, error) {
	rooms, err := s.rooms.List(ctx, repository.RoomFilter{IDs: ids})
	if err != nil {
		s.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return rooms, nil
}

// Update replaces the room's name. Fetch-then-update, same strategy as
// everywhere else: the NotFound comes from GetByID so it is consistent.
func (s *RoomService) Update(ctx context.Context, id int, name string) (*model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("room name is required", map[string]any{"name": "required"})
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed(
			fmt.Sprintf("room name must be %d characters or less", MaxNameLength),
			map[string]any{"name": "too long"})
	}

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	room.Name = name
	if err := s.rooms.Update(ctx, room); err != nil {
		s.logger.Error("failed to update room",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating room: %w", err)
	}

	s.logger.Info("room updated", slog.Int("id", room.ID), slog.String("name", room.Name))
	return room, nil
}

// Delete removes a room.
//
// DELETION POLICY: deleting a room that students still reference is
// rejected with a conflict error. Callers must move or delete the
// students first. This keeps every non-null student.room pointing at an
// existing room without needing a second file write here.
func (s *RoomService) Delete(ctx context.Context, id int) error {
	occupants, err := s.students.List(ctx, repository.StudentFilter{Rooms: []int{id}})
	if err != nil {
		return fmt.Errorf("checking room occupancy: %w", err)
	}
	if len(occupants) > 0 {
		return apperror.Conflict(
			fmt.Sprintf("room %d still has %d students assigned", id, len(occupants)))
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("room deleted", slog.Int("id", id))
	return nil
}

// Students returns the students assigned to the given room, in storage
// order. A missing room is a NotFound, not an empty list.
func (s *RoomService) Students(ctx context.Context, roomID int) ([]model.Student, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.students.List(ctx, repository.StudentFilter{Rooms: []int{roomID}})
}
