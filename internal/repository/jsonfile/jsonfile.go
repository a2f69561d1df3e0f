// Package jsonfile implements the repository interfaces on top of plain
// JSON files — one file per collection.
//
// PERSISTENCE MODEL:
// Every mutating call is a full read-modify-write cycle: load the whole
// collection, change it in memory, rewrite the whole file. There is no
// transaction log and no partial write — the file IS the database.
// That is fine at this data size and keeps the on-disk format identical
// to the API's JSON shape (inspectable and editable by hand).
//
// CONCURRENCY:
// Each store guards its file with a sync.Mutex held for the entire
// read-modify-write cycle, so concurrent requests within this process
// cannot interleave and lose writes. Two PROCESSES sharing a data
// directory are still last-writer-wins — a documented limitation, not
// something this layer tries to solve.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	roomsFile    = "rooms.json"
	studentsFile = "students.json"
)

// Store bundles the two collection stores behind one constructor so the
// composition root deals with a single value.
type Store struct {
	Rooms    *RoomStore
	Students *StudentStore
}

// New creates the data directory if needed and returns stores for both
// collections. Missing files are not an error — they read as empty
// collections and spring into existence on the first write.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: creating data directory %s: %w", dataDir, err)
	}
	return &Store{
		Rooms:    NewRoomStore(filepath.Join(dataDir, roomsFile)),
		Students: NewStudentStore(filepath.Join(dataDir, studentsFile)),
	}, nil
}

// readCollection loads a JSON array file into a slice.
// A missing file reads as an empty collection; malformed JSON is a real
// error and is surfaced, never papered over.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("jsonfile: reading %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("jsonfile: invalid JSON in %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeCollection rewrites the whole collection file.
//
// TEMP FILE + RENAME:
// Writing to a temp file in the same directory and renaming it over the
// target means a crash mid-write leaves the old file intact instead of
// a truncated one. Rename within a directory is atomic on POSIX systems.
func writeCollection[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encoding %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonfile: creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replacing %s: %w", path, err)
	}
	return nil
}

// intSet turns a filter slice into a membership set.
// Returns nil for a nil slice so callers can distinguish "no filter"
// from "filter that matches nothing".
func intSet(values []int) map[int]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
