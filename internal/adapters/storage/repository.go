package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// Key suffixes appended to the configured prefix.
const (
	questionsKey = "questions"
	userKey      = "user"
)

// RepositoryConfig configures a Repository.
type RepositoryConfig struct {
	// KeyPrefix namespaces the stored documents, e.g. "stackit_".
	KeyPrefix string

	// Seed makes LoadQuestions return SeedQuestions when nothing is stored.
	Seed bool
}

// Repository implements ports.BoardStore on top of a ports.KeyValueStore.
type Repository struct {
	kv           ports.KeyValueStore
	questionsKey string
	userKey      string
	seed         bool

	// now is overridable for testing.
	now func() time.Time
}

var _ ports.BoardStore = (*Repository)(nil)

// NewRepository creates a board repository over kv.
func NewRepository(kv ports.KeyValueStore, cfg RepositoryConfig) *Repository {
	return &Repository{
		kv:           kv,
		questionsKey: cfg.KeyPrefix + questionsKey,
		userKey:      cfg.KeyPrefix + userKey,
		seed:         cfg.Seed,
		now:          time.Now,
	}
}

// LoadQuestions returns the stored collection, or the seed collection when
// nothing is stored yet.
func (r *Repository) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	raw, err := r.kv.Get(ctx, r.questionsKey)
	if domain.IsNotFound(err) {
		return r.initialQuestions(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}

	var recs []questionRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %w", r.questionsKey, ErrCorruptRecord, err)
	}

	return fromQuestionRecords(recs), nil
}

// SaveQuestions overwrites the stored collection.
func (r *Repository) SaveQuestions(ctx context.Context, questions []domain.Question) error {
	raw, err := json.Marshal(toQuestionRecords(questions))
	if err != nil {
		return fmt.Errorf("encoding questions: %w", err)
	}

	if err := r.kv.Set(ctx, r.questionsKey, string(raw)); err != nil {
		return fmt.Errorf("saving questions: %w", err)
	}

	return nil
}

// LoadUser returns the stored user, or nil when none is stored. A stored
// user is always reported as logged in.
func (r *Repository) LoadUser(ctx context.Context) (*domain.User, error) {
	raw, err := r.kv.Get(ctx, r.userKey)
	if domain.IsNotFound(err) {
		return nil, nil //nolint:nilnil // absent user is not an error
	}

	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %w", r.userKey, ErrCorruptRecord, err)
	}

	return fromUserRecord(rec), nil
}

// SaveUser overwrites the stored user.
func (r *Repository) SaveUser(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(toUserRecord(user))
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	if err := r.kv.Set(ctx, r.userKey, string(raw)); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	return nil
}

// ClearUser removes the stored user.
func (r *Repository) ClearUser(ctx context.Context) error {
	if err := r.kv.Delete(ctx, r.userKey); err != nil {
		return fmt.Errorf("clearing user: %w", err)
	}

	return nil
}

func (r *Repository) initialQuestions() []domain.Question {
	if !r.seed {
		return []domain.Question{}
	}

	return SeedQuestions(r.now())
}
