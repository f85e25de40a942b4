// Package id provides the primary key type of devices, reference lists and audit entries.
package id

import (
	"github.com/google/uuid"
)

// ID is a UUID; new values are version 7, so they sort by creation time.
type ID = uuid.UUID

// New returns a fresh UUIDv7, or a random v4 if the clock source fails.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse reads an ID from its canonical string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// Nil returns the zero ID.
func Nil() ID { return uuid.Nil }

// IsNil reports whether v is the zero ID.
func IsNil(v ID) bool { return v == uuid.Nil }
