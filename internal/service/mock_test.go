package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// Hand-written in-memory mocks for both repositories. The services only
// see the interfaces, so these swap in for the jsonfile stores and keep
// the tests free of disk I/O. Slices (not maps) back the storage so the
// mocks preserve insertion order the way the real store does.

type mockRoomRepo struct {
	rooms  []model.Room
	nextID int
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	m.nextID++
	room.ID = m.nextID
	m.rooms = append(m.rooms, *room)
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id int) (*model.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			room := m.rooms[i]
			return &room, nil
		}
	}
	return nil, apperror.NotFound("room", id)
}

func (m *mockRoomRepo) List(_ context.Context, filter repository.RoomFilter) ([]model.Room, error) {
	if filter.IDs == nil {
		return append([]model.Room{}, m.rooms...), nil
	}
	ids := make(map[int]struct{}, len(filter.IDs))
	for _, id := range filter.IDs {
		ids[id] = struct{}{}
	}
	result := []model.Room{}
	for _, r := range m.rooms {
		if _, ok := ids[r.ID]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	for i := range m.rooms {
		if m.rooms[i].ID == room.ID {
			m.rooms[i] = *room
			return nil
		}
	}
	return apperror.NotFound("room", room.ID)
}

func (m *mockRoomRepo) Delete(_ context.Context, id int) error {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("room", id)
}

type mockStudentRepo struct {
	students []model.Student
	nextID   int
	updates  int // how many times Update was called; Move idempotence checks this
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.nextID++
	student.ID = m.nextID
	m.students = append(m.students, *student)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			student := m.students[i]
			return &student, nil
		}
	}
	return nil, apperror.NotFound("student", id)
}

func (m *mockStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	var ids, rooms map[int]struct{}
	if filter.IDs != nil {
		ids = make(map[int]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = struct{}{}
		}
	}
	if filter.Rooms != nil {
		rooms = make(map[int]struct{}, len(filter.Rooms))
		for _, id := range filter.Rooms {
			rooms[id] = struct{}{}
		}
	}

	result := []model.Student{}
	for _, st := range m.students {
		if ids != nil {
			if _, ok := ids[st.ID]; !ok {
				continue
			}
		}
		if rooms != nil {
			if st.Room == nil {
				continue
			}
			if _, ok := rooms[*st.Room]; !ok {
				continue
			}
		}
		result = append(result, st)
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.updates++
	for i := range m.students {
		if m.students[i].ID == student.ID {
			m.students[i] = *student
			return nil
		}
	}
	return apperror.NotFound("student", student.ID)
}

func (m *mockStudentRepo) Delete(_ context.Context, id int) error {
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("student", id)
}

// newTestServices wires all three services over shared mocks so tests
// can seed rooms and students through one pair of repositories.
func newTestServices(t *testing.T) (*RoomService, *StudentService, *CombinedService, *mockRoomRepo, *mockStudentRepo) {
	t.Helper()
	rooms := &mockRoomRepo{}
	students := &mockStudentRepo{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRoomService(rooms, students, logger),
		NewStudentService(students, rooms, logger),
		NewCombinedService(rooms, students, logger),
		rooms, students
}

func intPtr(v int) *int {
	return &v
}
