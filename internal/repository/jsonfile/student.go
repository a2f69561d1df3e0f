package jsonfile

import (
	"context"
	"sync"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

var _ repository.StudentRepository = (*StudentStore)(nil)

// StudentStore persists students in a single JSON file.
// Same locking and read-modify-write discipline as RoomStore.
type StudentStore struct {
	path string
	mu   sync.Mutex
}

func NewStudentStore(path string) *StudentStore {
	return &StudentStore{path: path}
}

func (s *StudentStore) Create(_ context.Context, student *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := readCollection[model.Student](s.path)
	if err != nil {
		return err
	}

	student.ID = nextStudentID(students)
	students = append(students, *student)
	return writeCollection(s.path, students)
}

func (s *StudentStore) GetByID(_ context.Context, id int) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := readCollection[model.Student](s.path)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			student := students[i]
			return &student, nil
		}
	}
	return nil, apperror.NotFound("student", id)
}

// List returns students in storage order. Both filters are membership
// sets; a student must satisfy every non-nil filter to be included, and
// a student with a null room never matches a Rooms filter.
func (s *StudentStore) List(_ context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := readCollection[model.Student](s.path)
	if err != nil {
		return nil, err
	}

	ids := intSet(filter.IDs)
	rooms := intSet(filter.Rooms)
	if ids == nil && rooms == nil {
		return students, nil
	}

	filtered := make([]model.Student, 0, len(students))
	for _, st := range students {
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
		filtered = append(filtered, st)
	}
	return filtered, nil
}

func (s *StudentStore) Update(_ context.Context, student *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := readCollection[model.Student](s.path)
	if err != nil {
		return err
	}
	for i := range students {
		if students[i].ID == student.ID {
			students[i] = *student
			return writeCollection(s.path, students)
		}
	}
	return apperror.NotFound("student", student.ID)
}

func (s *StudentStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := readCollection[model.Student](s.path)
	if err != nil {
		return err
	}

	remaining := make([]model.Student, 0, len(students))
	for _, st := range students {
		if st.ID != id {
			remaining = append(remaining, st)
		}
	}
	if len(remaining) == len(students) {
		return apperror.NotFound("student", id)
	}
	return writeCollection(s.path, remaining)
}

func nextStudentID(students []model.Student) int {
	maxID := 0
	for _, st := range students {
		if st.ID > maxID {
			maxID = st.ID
		}
	}
	return maxID + 1
}
