package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sakif/students-rooms-api/internal/apperror"
	"github.com/sakif/students-rooms-api/internal/model"
	"github.com/sakif/students-rooms-api/internal/repository"
)

// newTestStore creates a store over a throwaway directory.
// t.TempDir() is removed automatically when the test finishes, so each
// test gets fresh, isolated JSON files.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

func createTestRoom(t *testing.T, store *Store, name string) *model.Room {
	t.Helper()
	room := &model.Room{Name: name}
	if err := store.Rooms.Create(context.Background(), room); err != nil {
		t.Fatalf("failed to create test room: %v", err)
	}
	return room
}

func TestRoomCreate_AssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)

	first := createTestRoom(t, store, "Room #1")
	second := createTestRoom(t, store, "Room #2")

	if first.ID != 1 {
		t.Errorf("first room ID = %d, want 1", first.ID)
	}
	if second.ID != 2 {
		t.Errorf("second room ID = %d, want 2", second.ID)
	}
}

func TestRoomCreate_VerifyPersistence(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	original := createTestRoom(t, store, "Physics")

	// A brand-new store over the same directory must see the room —
	// proving the write actually hit the file, not just memory.
	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	fetched, err := reopened.Rooms.GetByID(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fetched.Name != "Physics" {
		t.Errorf("Name = %q, want %q", fetched.Name, "Physics")
	}
}

func TestRoomGetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Rooms.GetByID(context.Background(), 99)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestRoomList_PreservesStorageOrder(t *testing.T) {
	store := newTestStore(t)
	createTestRoom(t, store, "A")
	createTestRoom(t, store, "B")
	createTestRoom(t, store, "C")

	rooms, err := store.Rooms.List(context.Background(), repository.RoomFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("List() returned %d rooms, want 3", len(rooms))
	}
	for i, want := range []string{"A", "B", "C"} {
		if rooms[i].Name != want {
			t.Errorf("rooms[%d].Name = %q, want %q", i, rooms[i].Name, want)
		}
	}
}

func TestRoomList_IDsFilter(t *testing.T) {
	store := newTestStore(t)
	createTestRoom(t, store, "A")
	createTestRoom(t, store, "B")
	createTestRoom(t, store, "C")

	// 99 matches nothing — absent from the result, not an error.
	rooms, err := store.Rooms.List(context.Background(), repository.RoomFilter{IDs: []int{1, 3, 99}})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("List() returned %d rooms, want 2", len(rooms))
	}
	if rooms[0].ID != 1 || rooms[1].ID != 3 {
		t.Errorf("filtered ids = [%d %d], want [1 3]", rooms[0].ID, rooms[1].ID)
	}
}

func TestRoomUpdate(t *testing.T) {
	store := newTestStore(t)
	room := createTestRoom(t, store, "Old")

	room.Name = "New"
	if err := store.Rooms.Update(context.Background(), room); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	fetched, err := store.Rooms.GetByID(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fetched.Name != "New" {
		t.Errorf("Name = %q, want %q", fetched.Name, "New")
	}
}

func TestRoomUpdate_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Rooms.Update(context.Background(), &model.Room{ID: 99, Name: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestRoomDelete(t *testing.T) {
	store := newTestStore(t)
	room := createTestRoom(t, store, "doomed")

	if err := store.Rooms.Delete(context.Background(), room.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Rooms.GetByID(context.Background(), room.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestRoomDelete_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Rooms.Delete(context.Background(), 99)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestRoomList_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write malformed file: %v", err)
	}
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Malformed JSON must surface as an error, never read as empty.
	if _, err := store.Rooms.List(context.Background(), repository.RoomFilter{}); err == nil {
		t.Error("List() over malformed file succeeded, want error")
	}
}
