package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// CombinedService produces the joined rooms+students view.
type CombinedService struct {
	rooms    repository.RoomRepository
	students repository.StudentRepository
	logger   *slog.Logger
}

func NewCombinedService(rooms repository.RoomRepository, students repository.StudentRepository, logger *slog.Logger) *CombinedService {
	return &CombinedService{
		rooms:    rooms,
		students: students,
		logger:   logger,
	}
}

// Combined returns every room with its students embedded.
//
// Rooms keep storage order; within each room, students keep storage
// order. Rooms with no students embed an empty list, never null.
// Students with a null room, or whose room id no longer exists, appear
// nowhere in the output.
func (s *CombinedService) Combined(ctx context.Context) ([]model.RoomWithStudents, error) {
	rooms, err := s.rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		s.logger.Error("failed to load rooms for combined view", slog.String("error", err.Error()))
		return nil, fmt.Errorf("combining: listing rooms: %w", err)
	}
	students, err := s.students.List(ctx, repository.StudentFilter{})
	if err != nil {
		s.logger.Error("failed to load students for combined view", slog.String("error", err.Error()))
		return nil, fmt.Errorf("combining: listing students: %w", err)
	}

	combined := make([]model.RoomWithStudents, len(rooms))
	index := make(map[int]int, len(rooms)) // room id → position in combined
	for i, r := range rooms {
		combined[i] = model.RoomWithStudents{
			ID:       r.ID,
			Name:     r.Name,
			Students: []model.StudentRef{},
		}
		index[r.ID] = i
	}

	for _, st := range students {
		if st.Room == nil {
			continue
		}
		i, ok := index[*st.Room]
		if !ok {
			continue
		}
		combined[i].Students = append(combined[i].Students, model.StudentRef{
			ID:   st.ID,
			Name: st.Name,
		})
	}

	return combined, nil
}
