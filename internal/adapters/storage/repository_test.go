package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/mocks"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestRepository(kv *MemoryStore, seed bool) *Repository {
	r := NewRepository(kv, RepositoryConfig{KeyPrefix: "stackit_", Seed: seed})
	r.now = func() time.Time { return fixedNow }

	return r
}

func TestRepository_LoadQuestions_SeedsWhenEmpty(t *testing.T) {
	repo := newTestRepository(NewMemoryStore(), true)

	qs, err := repo.LoadQuestions(context.Background())
	require.NoError(t, err)

	require.Len(t, qs, 2)
	assert.Equal(t, "1", qs[0].ID)
	assert.Len(t, qs[0].Answers, 1)
	assert.Equal(t, fixedNow.Add(-2*time.Hour), qs[0].CreatedAt)
	assert.Equal(t, fixedNow.Add(-time.Hour), qs[0].Answers[0].CreatedAt)
	assert.Equal(t, "2", qs[1].ID)
	assert.Empty(t, qs[1].Answers)
	assert.Equal(t, fixedNow.Add(-4*time.Hour), qs[1].CreatedAt)
}

func TestRepository_LoadQuestions_NoSeed(t *testing.T) {
	repo := newTestRepository(NewMemoryStore(), false)

	qs, err := repo.LoadQuestions(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestRepository_QuestionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(NewMemoryStore(), true)

	want := []domain.Question{
		{
			ID:          "q-1",
			Title:       "Title",
			Description: "<p>markup <b>kept</b></p>",
			Tags:        []string{"go", "storage"},
			Author:      "ada",
			CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC),
			Votes:       -3,
			Views:       9,
			Answers: []domain.Answer{
				{ID: "a-1", QuestionID: "q-1", Content: "first", Author: "bob", CreatedAt: fixedNow, Votes: 2},
				{ID: "a-2", QuestionID: "q-1", Content: "second", Author: "eve", CreatedAt: fixedNow, Votes: 0},
			},
		},
		{
			ID:        "q-2",
			Title:     "No answers",
			Tags:      []string{},
			Author:    "ada",
			CreatedAt: fixedNow,
			Answers:   []domain.Answer{},
		},
	}

	require.NoError(t, repo.SaveQuestions(ctx, want))

	got, err := repo.LoadQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_StoredLayout(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := newTestRepository(kv, false)

	require.NoError(t, repo.SaveQuestions(ctx, []domain.Question{{
		ID:        "1",
		Title:     "t",
		CreatedAt: fixedNow,
		Answers:   []domain.Answer{{ID: "a", QuestionID: "1", CreatedAt: fixedNow}},
	}}))

	raw, err := kv.Get(ctx, "stackit_questions")
	require.NoError(t, err)

	for _, field := range []string{`"id"`, `"title"`, `"description"`, `"tags":[]`, `"author"`,
		`"createdAt":"2026-05-04T10:00:00Z"`, `"votes"`, `"views"`, `"answers"`, `"questionId"`, `"content"`} {
		assert.Contains(t, raw, field)
	}
}

func TestRepository_LoadQuestions_AcceptsBrowserLayout(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := newTestRepository(kv, true)

	raw := `[{"id":"17","title":"t","description":"d","tags":["x"],"author":"a",` +
		`"createdAt":"2026-05-04T08:00:00.000Z","votes":1,"views":2,"answers":null}]`
	require.NoError(t, kv.Set(ctx, "stackit_questions", raw))

	qs, err := repo.LoadQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, fixedNow.Add(-2*time.Hour), qs[0].CreatedAt)
	assert.NotNil(t, qs[0].Answers)
	assert.Empty(t, qs[0].Answers)
}

func TestRepository_LoadQuestions_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := newTestRepository(kv, true)

	require.NoError(t, kv.Set(ctx, "stackit_questions", "{not json"))

	_, err := repo.LoadQuestions(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestRepository_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(NewMemoryStore(), true)

	u, err := repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repo.SaveUser(ctx, domain.User{Name: "Ada", Email: "ada@example.com"}))

	u, err = repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.User{Name: "Ada", Email: "ada@example.com", IsLoggedIn: true}, u)

	require.NoError(t, repo.ClearUser(ctx))

	u, err = repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repo.ClearUser(ctx), "clearing twice is fine")
}

func TestRepository_LoadUser_ForcesLoggedIn(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := newTestRepository(kv, true)

	require.NoError(t, kv.Set(ctx, "stackit_user", `{"name":"Ada","isLoggedIn":false}`))

	u, err := repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.True(t, u.IsLoggedIn)
}

func TestRepository_BackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(kv *mocks.MockKeyValueStore)
		call  func(r *Repository) error
	}{
		{
			name: "load questions",
			setup: func(kv *mocks.MockKeyValueStore) {
				kv.EXPECT().Get(mock.Anything, "p_questions").Return("", boom)
			},
			call: func(r *Repository) error {
				_, err := r.LoadQuestions(ctx)
				return err
			},
		},
		{
			name: "save questions",
			setup: func(kv *mocks.MockKeyValueStore) {
				kv.EXPECT().Set(mock.Anything, "p_questions", "[]").Return(boom)
			},
			call: func(r *Repository) error {
				return r.SaveQuestions(ctx, []domain.Question{})
			},
		},
		{
			name: "load user",
			setup: func(kv *mocks.MockKeyValueStore) {
				kv.EXPECT().Get(mock.Anything, "p_user").Return("", boom)
			},
			call: func(r *Repository) error {
				_, err := r.LoadUser(ctx)
				return err
			},
		},
		{
			name: "save user",
			setup: func(kv *mocks.MockKeyValueStore) {
				kv.EXPECT().Set(mock.Anything, "p_user", mock.AnythingOfType("string")).Return(boom)
			},
			call: func(r *Repository) error {
				return r.SaveUser(ctx, domain.User{Name: "x"})
			},
		},
		{
			name: "clear user",
			setup: func(kv *mocks.MockKeyValueStore) {
				kv.EXPECT().Delete(mock.Anything, "p_user").Return(boom)
			},
			call: func(r *Repository) error {
				return r.ClearUser(ctx)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := mocks.NewMockKeyValueStore(t)
			tt.setup(kv)

			err := tt.call(NewRepository(kv, RepositoryConfig{KeyPrefix: "p_"}))

			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
		})
	}
}
