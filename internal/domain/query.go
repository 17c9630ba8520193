package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortOption selects the ordering of the question list.
type SortOption string

// Supported sort options. All sort descending.
const (
	SortNewest  SortOption = "newest"
	SortVotes   SortOption = "votes"
	SortAnswers SortOption = "answers"
)

// ParseSortOption converts user input to a SortOption.
// The empty string selects SortNewest.
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortVotes:
		return SortVotes, nil
	case SortAnswers:
		return SortAnswers, nil
	default:
		return "", NewValidationErrorWithValue("sort", "must be one of: newest votes answers", s)
	}
}

// PaginationInfo describes the page returned by Query.
type PaginationInfo struct {
	CurrentPage  int
	TotalPages   int
	ItemsPerPage int
	TotalItems   int
}

// QueryParams are the inputs of the question list pipeline.
type QueryParams struct {
	Search         string
	SortBy         SortOption
	UnansweredOnly bool

	// Page is 1-based.
	Page int

	// PageSize falls back to DefaultPageSize when not positive.
	PageSize int
}

// Query filters, sorts and paginates a question collection.
// It never modifies all; the returned page is a fresh slice that shares
// nothing with the input.
func Query(all []Question, p QueryParams) ([]Question, PaginationInfo) {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(all, p.Search, p.UnansweredOnly)
	SortQuestions(filtered, p.SortBy)

	total := len(filtered)
	info := PaginationInfo{
		CurrentPage:  p.Page,
		TotalPages:   pageCount(total, pageSize),
		ItemsPerPage: pageSize,
		TotalItems:   total,
	}

	// Compare page numbers, not offsets: offsets overflow for huge pages.
	if p.Page < 1 || p.Page > info.TotalPages {
		return []Question{}, info
	}

	start := (p.Page - 1) * pageSize
	end := start + min(pageSize, total-start)

	return CloneQuestions(filtered[start:end]), info
}

func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}

	return pages
}

// Filter keeps questions that match the search text and the unanswered flag,
// preserving collection order. Matching is case-insensitive substring
// containment on title, description and each tag.
func Filter(all []Question, search string, unansweredOnly bool) []Question {
	needle := strings.ToLower(search)
	out := make([]Question, 0, len(all))

	for _, q := range all {
		if unansweredOnly && len(q.Answers) > 0 {
			continue
		}

		if !matches(q, needle) {
			continue
		}

		out = append(out, q)
	}

	return out
}

func matches(q Question, needle string) bool {
	if needle == "" {
		return true
	}

	if strings.Contains(strings.ToLower(q.Title), needle) ||
		strings.Contains(strings.ToLower(q.Description), needle) {
		return true
	}

	return slices.ContainsFunc(q.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}

// SortQuestions orders questions in place, descending by the chosen key.
// Equal keys keep their relative order. Unknown options sort as newest.
func SortQuestions(qs []Question, by SortOption) {
	var order func(a, b Question) int

	switch by {
	case SortVotes:
		order = func(a, b Question) int { return cmp.Compare(b.Votes, a.Votes) }
	case SortAnswers:
		order = func(a, b Question) int { return cmp.Compare(len(b.Answers), len(a.Answers)) }
	default:
		order = func(a, b Question) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	slices.SortStableFunc(qs, order)
}

// SortAnswersByVotes returns a copy of answers ordered by votes, highest
// first, as shown on the question detail view. Ties keep submission order.
func SortAnswersByVotes(answers []Answer) []Answer {
	out := slices.Clone(answers)
	slices.SortStableFunc(out, func(a, b Answer) int { return cmp.Compare(b.Votes, a.Votes) })

	return out
}
