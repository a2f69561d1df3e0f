// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Room represents a dormitory room.
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON — both for HTTP bodies and for the rooms.json file on disk,
// which share the same shape.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RoomWithStudents is one element of the combined rooms+students view:
// the room's own fields plus the students assigned to it.
// Students embed as the reduced {id, name} shape, not the full Student record.
type RoomWithStudents struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Students []StudentRef `json:"students"`
}

// StudentRef is the reduced student shape embedded in the combined view.
type StudentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
