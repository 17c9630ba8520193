package storage

import (
	"time"

	"github.com/jsamuelsen/stackit/internal/domain"
)

const seedAnswer = "The most modern and flexible approach is using CSS Flexbox:\n\n" +
	"```css\n.container {\n  display: flex;\n  justify-content: center;\n  align-items: center;\n  height: 100vh;\n}\n```\n\n" +
	"This works reliably across all modern browsers."

// SeedQuestions returns the sample board shown before anything is stored.
// Timestamps are relative to now.
func SeedQuestions(now time.Time) []domain.Question {
	now = now.UTC()

	return []domain.Question{
		{
			ID:    "1",
			Title: "How do I center a div in CSS?",
			Description: "I've been trying to center a div both horizontally and vertically for hours. " +
				"What's the best modern approach using CSS?",
			Tags:      []string{"css", "html", "frontend"},
			Author:    "WebDevNewbie",
			CreatedAt: now.Add(-2 * time.Hour),
			Votes:     5,
			Views:     23,
			Answers: []domain.Answer{
				{
					ID:         "1",
					QuestionID: "1",
					Content:    seedAnswer,
					Author:     "CSSExpert",
					CreatedAt:  now.Add(-1 * time.Hour),
					Votes:      8,
				},
			},
		},
		{
			ID:    "2",
			Title: "What's the difference between React hooks and class components?",
			Description: "I'm learning React and confused about when to use hooks vs class components. " +
				"Can someone explain the key differences and modern best practices?",
			Tags:      []string{"react", "javascript", "hooks"},
			Author:    "ReactLearner",
			CreatedAt: now.Add(-4 * time.Hour),
			Votes:     12,
			Views:     45,
			Answers:   []domain.Answer{},
		},
	}
}
