package jsonfile

import (
	"context"
	"sync"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// Compile-time check that *RoomStore satisfies the repository contract.
var _ repository.RoomRepository = (*RoomStore)(nil)

// RoomStore persists rooms in a single JSON file.
type RoomStore struct {
	path string
	mu   sync.Mutex // serializes every read-modify-write cycle on the file
}

func NewRoomStore(path string) *RoomStore {
	return &RoomStore{path: path}
}

// Create assigns the next free id (max existing + 1) and appends the room.
// The id is written back into the caller's struct, pointer-receiver style.
func (s *RoomStore) Create(_ context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := readCollection[model.Room](s.path)
	if err != nil {
		return err
	}

	room.ID = nextRoomID(rooms)
	rooms = append(rooms, *room)
	return writeCollection(s.path, rooms)
}

func (s *RoomStore) GetByID(_ context.Context, id int) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := readCollection[model.Room](s.path)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			room := rooms[i]
			return &room, nil
		}
	}
	return nil, apperror.NotFound("room", id)
}

// List returns rooms in storage order, optionally narrowed to a set of ids.
// Filter values that match nothing are simply absent from the result.
func (s *RoomStore) List(_ context.Context, filter repository.RoomFilter) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := readCollection[model.Room](s.path)
	if err != nil {
		return nil, err
	}

	ids := intSet(filter.IDs)
	if ids == nil {
		return rooms, nil
	}

	filtered := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := ids[r.ID]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *RoomStore) Update(_ context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := readCollection[model.Room](s.path)
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = *room
			return writeCollection(s.path, rooms)
		}
	}
	return apperror.NotFound("room", room.ID)
}

func (s *RoomStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := readCollection[model.Room](s.path)
	if err != nil {
		return err
	}

	remaining := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) == len(rooms) {
		return apperror.NotFound("room", id)
	}
	return writeCollection(s.path, remaining)
}

func nextRoomID(rooms []model.Room) int {
	maxID := 0
	for _, r := range rooms {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
