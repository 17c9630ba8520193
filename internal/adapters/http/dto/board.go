package dto

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jsamuelsen/stackit/internal/domain"
)

// ExcerptLength is the number of characters kept in a question excerpt.
const ExcerptLength = 150

var textOnly = bluemonday.StrictPolicy()

// Excerpt returns the plain text of markup, cut to ExcerptLength characters
// with "..." appended when anything was cut.
func Excerpt(markup string) string {
	text := html.UnescapeString(textOnly.Sanitize(markup))
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}

	runes := []rune(text)

	return strings.TrimRight(string(runes[:ExcerptLength]), " ") + "..."
}

// ListQuestionsRequest are the query parameters of GET /questions.
type ListQuestionsRequest struct {
	PageRequest

	Search     string `form:"search"     json:"search"`
	Sort       string `form:"sort"       json:"sort"       validate:"omitempty,sort"`
	Unanswered bool   `form:"unanswered" json:"unanswered"`
}

// AskQuestionRequest is the body of POST /questions. Blank titles and
// descriptions are reported by the board.
type AskQuestionRequest struct {
	Title       string   `json:"title"       validate:"max=300"`
	Description string   `json:"description" validate:"max=30000"`
	Tags        []string `json:"tags"        validate:"max=10,dive,tag,max=35"`
}

// AddAnswerRequest is the body of POST /questions/:id/answers.
type AddAnswerRequest struct {
	Content string `json:"content" validate:"max=30000"`
}

// VoteRequest is the body of the vote endpoints.
type VoteRequest struct {
	Delta int `json:"delta" validate:"vote"`
}

// LoginRequest is the body of POST /session.
type LoginRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"  validate:"max=80"`
}

// DisplayNameRequest is the body of PUT /session/name.
type DisplayNameRequest struct {
	Name string `json:"name" validate:"max=80"`
}

// UpdateViewRequest is the body of PATCH /view. Absent fields are unchanged.
type UpdateViewRequest struct {
	Search     *string `json:"search"`
	Sort       *string `json:"sort"       validate:"omitempty,sort"`
	Unanswered *bool   `json:"unanswered"`
	Page       *int    `json:"page"       validate:"omitempty,gte=1"`
}

// QuestionResponse is the HTTP representation of a question.
type QuestionResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Excerpt     string           `json:"excerpt"`
	Tags        []string         `json:"tags"`
	Author      string           `json:"author"`
	CreatedAt   time.Time        `json:"createdAt"`
	AskedAgo    string           `json:"askedAgo"`
	Votes       int              `json:"votes"`
	Views       int              `json:"views"`
	AnswerCount int              `json:"answerCount"`
	Answers     []AnswerResponse `json:"answers"`
}

// AnswerResponse is the HTTP representation of an answer.
type AnswerResponse struct {
	ID          string    `json:"id"`
	QuestionID  string    `json:"questionId"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	AnsweredAgo string    `json:"answeredAgo"`
	Votes       int       `json:"votes"`
}

// UserResponse is the HTTP representation of the current user.
type UserResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// SessionResponse wraps the user so a signed-out session is explicit.
type SessionResponse struct {
	User *UserResponse `json:"user"`
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	Questions []QuestionResponse `json:"questions"`
	User      *UserResponse      `json:"user"`
}

// ViewResponse is the body of GET and PATCH /view.
type ViewResponse struct {
	Search     string             `json:"search"`
	Sort       string             `json:"sort"`
	Unanswered bool               `json:"unanswered"`
	Questions  []QuestionResponse `json:"questions"`
	Pagination Pagination         `json:"pagination"`
}

// Presenter converts domain values to responses relative to a clock.
type Presenter struct {
	Now func() time.Time
}

// NewPresenter returns a presenter using the wall clock.
func NewPresenter() Presenter {
	return Presenter{Now: time.Now}
}

// Question converts a domain question. Description and answer content are
// returned untouched; only the excerpt is stripped of markup.
func (p Presenter) Question(q domain.Question) QuestionResponse {
	now := p.Now()

	answers := make([]AnswerResponse, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, AnswerResponse{
			ID:          a.ID,
			QuestionID:  a.QuestionID,
			Content:     a.Content,
			Author:      a.Author,
			CreatedAt:   a.CreatedAt,
			AnsweredAgo: domain.FormatTimeAgo(a.CreatedAt, now),
			Votes:       a.Votes,
		})
	}

	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	return QuestionResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Excerpt:     Excerpt(q.Description),
		Tags:        tags,
		Author:      q.Author,
		CreatedAt:   q.CreatedAt,
		AskedAgo:    domain.FormatTimeAgo(q.CreatedAt, now),
		Votes:       q.Votes,
		Views:       q.Views,
		AnswerCount: len(q.Answers),
		Answers:     answers,
	}
}

// Questions converts a collection.
func (p Presenter) Questions(qs []domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, p.Question(q))
	}

	return out
}

// User converts the current user; nil stays nil.
func (p Presenter) User(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		IsLoggedIn: u.IsLoggedIn,
	}
}
