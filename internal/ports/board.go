// Package ports defines the contracts between the board coordinator and the
// adapters that back it. Adapters depend on ports; the app layer depends on
// ports and never on a concrete backend.
//
// Conventions:
//   - Context first on anything that may block on I/O
//   - Domain types in, domain types out
//   - Failures are reported with domain errors (ErrNotFound, ErrUnavailable)
package ports

import (
	"context"

	"github.com/jsamuelsen/stackit/internal/domain"
)

// BoardStore persists the question collection and the current user.
//
// Example usage in application layer:
//
//	questions, err := store.LoadQuestions(ctx)
//	if err != nil {
//	    logger.Warn("falling back to empty board", slog.Any("error", err))
//	}
type BoardStore interface {
	// LoadQuestions returns the stored collection. When nothing has been
	// stored yet it returns the seed collection (or an empty one when
	// seeding is disabled).
	LoadQuestions(ctx context.Context) ([]domain.Question, error)

	// SaveQuestions overwrites the stored collection.
	SaveQuestions(ctx context.Context, questions []domain.Question) error

	// LoadUser returns the stored user, or nil when none is stored.
	LoadUser(ctx context.Context) (*domain.User, error)

	// SaveUser overwrites the stored user.
	SaveUser(ctx context.Context, user domain.User) error

	// ClearUser removes the stored user. Clearing an absent user is not an error.
	ClearUser(ctx context.Context) error
}

// KeyValueStore is the minimal string store the board is persisted into.
// Implementations: memory, file, redis, postgres, mysql.
type KeyValueStore interface {
	// Get returns the value for key.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Does not return an error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// IDGenerator issues unique identifiers for new questions and answers.
type IDGenerator interface {
	NewID() string
}
