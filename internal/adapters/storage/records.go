// Package storage persists the board into a key-value backend.
//
// The board is stored as two JSON documents: the question collection and
// the current user. Storage records carry explicit JSON field names so the
// stored layout stays stable if domain types change.
package storage

import (
	"errors"
	"time"

	"github.com/jsamuelsen/stackit/internal/domain"
)

// ErrCorruptRecord indicates a stored document could not be decoded.
var ErrCorruptRecord = errors.New("corrupt stored record")

type questionRecord struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Author      string         `json:"author"`
	CreatedAt   time.Time      `json:"createdAt"`
	Votes       int            `json:"votes"`
	Views       int            `json:"views"`
	Answers     []answerRecord `json:"answers"`
}

type answerRecord struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	Votes      int       `json:"votes"`
}

type userRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

func toQuestionRecords(qs []domain.Question) []questionRecord {
	out := make([]questionRecord, len(qs))

	for i, q := range qs {
		answers := make([]answerRecord, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = answerRecord(a)
		}

		tags := q.Tags
		if tags == nil {
			tags = []string{}
		}

		out[i] = questionRecord{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Tags:        tags,
			Author:      q.Author,
			CreatedAt:   q.CreatedAt,
			Votes:       q.Votes,
			Views:       q.Views,
			Answers:     answers,
		}
	}

	return out
}

func fromQuestionRecords(recs []questionRecord) []domain.Question {
	out := make([]domain.Question, len(recs))

	for i, r := range recs {
		answers := make([]domain.Answer, len(r.Answers))
		for j, a := range r.Answers {
			answers[j] = domain.Answer{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				Content:    a.Content,
				Author:     a.Author,
				CreatedAt:  a.CreatedAt.UTC(),
				Votes:      a.Votes,
			}
		}

		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}

		out[i] = domain.Question{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Tags:        tags,
			Author:      r.Author,
			CreatedAt:   r.CreatedAt.UTC(),
			Votes:       r.Votes,
			Views:       r.Views,
			Answers:     answers,
		}
	}

	return out
}

func toUserRecord(u domain.User) userRecord {
	return userRecord{
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		IsLoggedIn: true,
	}
}

func fromUserRecord(r userRecord) *domain.User {
	return &domain.User{
		Name:       r.Name,
		Email:      r.Email,
		Avatar:     r.Avatar,
		IsLoggedIn: true,
	}
}
