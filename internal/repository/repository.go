// Package repository defines the persistence contracts for rooms and students.
//
// Services depend on these interfaces, NOT on the jsonfile package that
// implements them. Swapping the JSON files for a real database later means
// implementing these two interfaces and changing one line in the server
// wiring — no service or handler changes.
package repository

import (
	"context"

	"github.com/sakif/students-rooms-api/internal/model"
)

// RoomFilter narrows a room listing. A nil slice means "no filter on this
// field"; an empty non-nil slice matches nothing.
type RoomFilter struct {
	IDs []int
}

// StudentFilter narrows a student listing. Same nil-vs-empty convention
// as RoomFilter. Rooms matches on the student's room reference, so a
// student with a null room never matches a Rooms filter.
type StudentFilter struct {
	IDs   []int
	Rooms []int
}

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id int) (*model.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int) error
}
