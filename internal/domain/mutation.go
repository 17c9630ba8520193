package domain

import (
	"slices"
	"strings"
)

// Entity names used in NotFound errors.
const (
	EntityQuestion = "question"
	EntityAnswer   = "answer"
)

// The mutation functions below never modify their input. On success they
// return a new collection that shares untouched questions with the input;
// on failure they return the input slice itself together with the reason.

// AskQuestion prepends a new question authored by user.
func AskQuestion(all []Question, user *User, draft QuestionDraft, ne NewEntity) ([]Question, error) {
	if user == nil {
		return all, NewUnauthenticatedError("ask a question")
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return all, NewValidationError("title", "must not be empty")
	}

	description := strings.TrimSpace(draft.Description)
	if description == "" {
		return all, NewValidationError("description", "must not be empty")
	}

	q := Question{
		ID:          ne.ID,
		Title:       title,
		Description: description,
		Tags:        NormalizeTags(draft.Tags),
		Author:      user.Name,
		CreatedAt:   ne.At,
		Answers:     []Answer{},
	}

	out := make([]Question, 0, len(all)+1)
	out = append(out, q)
	out = append(out, all...)

	return out, nil
}

// RecordView counts one detail view of the question.
func RecordView(all []Question, questionID string) ([]Question, error) {
	return updateQuestion(all, questionID, func(q *Question) error {
		q.Views++
		return nil
	})
}

// VoteQuestion adds delta (+1 or -1) to the question's score.
func VoteQuestion(all []Question, questionID string, delta int) ([]Question, error) {
	if err := validateDelta(delta); err != nil {
		return all, err
	}

	return updateQuestion(all, questionID, func(q *Question) error {
		q.Votes += delta
		return nil
	})
}

// VoteAnswer adds delta (+1 or -1) to the score of one answer of a question.
func VoteAnswer(all []Question, questionID, answerID string, delta int) ([]Question, error) {
	if err := validateDelta(delta); err != nil {
		return all, err
	}

	return updateQuestion(all, questionID, func(q *Question) error {
		i := slices.IndexFunc(q.Answers, func(a Answer) bool { return a.ID == answerID })
		if i < 0 {
			return NewNotFoundError(EntityAnswer, answerID)
		}

		q.Answers = slices.Clone(q.Answers)
		q.Answers[i].Votes += delta

		return nil
	})
}

// AddAnswer appends a new answer by user to the question.
func AddAnswer(all []Question, user *User, questionID, content string, ne NewEntity) ([]Question, error) {
	if user == nil {
		return all, NewUnauthenticatedError("post an answer")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return all, NewValidationError("content", "must not be empty")
	}

	return updateQuestion(all, questionID, func(q *Question) error {
		a := Answer{
			ID:         ne.ID,
			QuestionID: q.ID,
			Content:    content,
			Author:     user.Name,
			CreatedAt:  ne.At,
		}

		answers := make([]Answer, 0, len(q.Answers)+1)
		answers = append(answers, q.Answers...)
		q.Answers = append(answers, a)

		return nil
	})
}

// FindQuestion returns the question with the given id.
func FindQuestion(all []Question, id string) (Question, bool) {
	i := slices.IndexFunc(all, func(q Question) bool { return q.ID == id })
	if i < 0 {
		return Question{}, false
	}

	return all[i], true
}

// NormalizeTags trims each tag and drops the empty ones, keeping order.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))

	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

// ParseTagList splits comma-separated tag input, e.g. "css, html,,frontend".
func ParseTagList(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// updateQuestion copies the collection, applies fn to a copy of the
// matching question and swaps it in. The input is returned untouched when
// the question is missing or fn fails.
func updateQuestion(all []Question, questionID string, fn func(q *Question) error) ([]Question, error) {
	i := slices.IndexFunc(all, func(q Question) bool { return q.ID == questionID })
	if i < 0 {
		return all, NewNotFoundError(EntityQuestion, questionID)
	}

	q := all[i]
	if err := fn(&q); err != nil {
		return all, err
	}

	out := slices.Clone(all)
	out[i] = q

	return out, nil
}

func validateDelta(delta int) error {
	if delta != 1 && delta != -1 {
		return NewValidationErrorWithValue("delta", "must be 1 or -1", delta)
	}

	return nil
}
