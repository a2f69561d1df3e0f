package model

import (
	"fmt"
	"strings"
	"time"
)

// Student represents a student record.
//
// Room is a pointer so it can be null in JSON — a student without a room
// serializes as "room": null. A plain int could not distinguish "no
// room" from a real room id. Birthday and Sex are optional and omitted
// from JSON when unset.
type Student struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Room     *int       `json:"room"`
	Birthday *Timestamp `json:"birthday,omitempty"`
	Sex      Sex        `json:"sex,omitempty"`
}

// Sex is the student's sex: "M" or "F". Empty means unspecified.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Valid reports whether s is one of the accepted values (empty counts —
// the field is optional).
func (s Sex) Valid() bool {
	return s == "" || s == SexMale || s == SexFemale
}

// TimestampLayout is the wire and storage format for Student.Birthday:
// an ISO-like timestamp with a fixed six-digit fractional second and no
// time zone, e.g. "2011-08-22T00:00:00.000000".
//
// This is NOT RFC 3339 (no zone offset, mandatory microseconds), so we
// can't rely on time.Time's default JSON marshaling — hence the custom
// Timestamp type below.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Timestamp wraps time.Time to marshal/unmarshal using TimestampLayout.
//
// EMBEDDING:
// By embedding time.Time, Timestamp gets all its methods (Before, After,
// Year, ...) for free. We only override the two JSON methods.
type Timestamp struct {
	time.Time
}

// NewTimestamp is a convenience constructor, mostly used in tests.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON renders the timestamp as a quoted TimestampLayout string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON parses a quoted TimestampLayout string.
// Any other format is rejected so that a malformed birthday surfaces as
// a validation error at the boundary instead of a silently-zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: expected format %s", s, TimestampLayout)
	}
	t.Time = parsed
	return nil
}
