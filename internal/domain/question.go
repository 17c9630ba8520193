package domain

import (
	"slices"
	"strings"
	"time"
)

// DefaultPageSize is the number of questions shown per page.
const DefaultPageSize = 10

// Question is a user-submitted topic with a rich-text body, tags and answers.
type Question struct {
	// ID is assigned by the identifier generator and never changes.
	ID string

	// Title is a short plain-text summary.
	Title string

	// Description is stored as raw markup. Rendering layers escape or
	// sanitize it; the core never interprets it.
	Description string

	Tags      []string
	Author    string
	CreatedAt time.Time

	// Votes has no floor or ceiling.
	Votes int

	// Views only ever grows, one per detail open.
	Views int

	// Answers are kept in submission order.
	Answers []Answer
}

// Answer is a rich-text response tied to exactly one question.
type Answer struct {
	ID string

	// QuestionID always equals the ID of the question holding this answer.
	QuestionID string

	Content   string
	Author    string
	CreatedAt time.Time
	Votes     int
}

// User is the current display identity. There is no credential behind it.
type User struct {
	Name   string
	Email  string
	Avatar string

	// IsLoggedIn is true whenever a user record is held in memory.
	IsLoggedIn bool
}

// NewUser builds a signed-in user from a display name and optional email.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}

	return &User{
		Name:       name,
		Email:      strings.TrimSpace(email),
		IsLoggedIn: true,
	}, nil
}

// QuestionDraft is the user input for a new question.
type QuestionDraft struct {
	Title       string
	Description string
	Tags        []string
}

// NewEntity carries the identity and creation time for an entity being created.
type NewEntity struct {
	ID string
	At time.Time
}

// Clone returns a deep copy of the question so callers can hand out
// snapshots without sharing slices.
func (q Question) Clone() Question {
	c := q
	c.Tags = slices.Clone(q.Tags)
	c.Answers = slices.Clone(q.Answers)

	return c
}

// CloneQuestions deep-copies a collection.
func CloneQuestions(all []Question) []Question {
	if all == nil {
		return nil
	}

	out := make([]Question, len(all))
	for i, q := range all {
		out[i] = q.Clone()
	}

	return out
}
