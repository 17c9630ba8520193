// Package idgen issues identifiers for new questions and answers.
package idgen

import "github.com/google/uuid"

// Generator produces time-ordered UUIDv7 strings: a 48-bit millisecond
// timestamp followed by random bits. Identifiers are unique for the life of
// the process and sort by creation time.
type Generator struct{}

// New returns a Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a fresh identifier. If the v7 source fails it falls back to
// a random v4 UUID.
func (g *Generator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
