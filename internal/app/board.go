// Package app contains the board coordinator, the application layer that
// owns the in-memory question collection and current user.
//
// Application Layer Responsibilities:
//   - Hold the single source of truth for questions, user and view state
//   - Route every change through the pure domain mutations
//   - Flush changed state to the BoardStore after each mutation
//   - Handle cross-cutting concerns (logging, tracing, metrics)
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters/http)
//   - Serialization or backend selection (that's adapters/storage)
//   - Filtering, sorting or mutation rules (that's the domain layer)
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/platform/logging"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// ErrUnsynced is reported by question saves while the board runs on its
// fallback collection because the stored one could not be read.
var ErrUnsynced = errors.New("stored questions not loaded, refusing to overwrite them")

// State is the snapshot returned by LoadInitialState.
type State struct {
	Questions []domain.Question
	User      *domain.User
}

// ViewState is the list view the board currently presents.
type ViewState struct {
	Search         string
	SortBy         domain.SortOption
	UnansweredOnly bool
	Page           int
}

// ViewChange updates part of the view state. Nil fields are left alone.
type ViewChange struct {
	Search         *string
	SortBy         *domain.SortOption
	UnansweredOnly *bool
	Page           *int
}

// ViewResult is the view state together with the page it selects.
type ViewResult struct {
	State      ViewState
	Questions  []domain.Question
	Pagination domain.PaginationInfo
}

// BoardConfig contains the dependencies of a Board.
type BoardConfig struct {
	Store ports.BoardStore
	IDs   ports.IDGenerator

	// PageSize is used when a query does not ask for one.
	PageSize int

	// Fallback supplies the collection used when the first load cannot read
	// the store. Nil means start empty. A board running on the fallback does
	// not write questions back until a later load succeeds.
	Fallback func() []domain.Question

	Logger *slog.Logger
}

// Board is the state coordinator. All methods are safe for concurrent use;
// a mutex makes each operation run to completion before the next starts.
//
// Example usage:
//
//	board := app.NewBoard(app.BoardConfig{Store: repo, IDs: idgen.New(), Logger: logger})
//	if _, err := board.LoadInitialState(ctx); err != nil {
//	    return err
//	}
//
//	q, err := board.AskQuestion(ctx, domain.QuestionDraft{Title: "...", Description: "..."})
type Board struct {
	mu sync.Mutex

	store    ports.BoardStore
	ids      ports.IDGenerator
	exec     *Executor
	logger   *slog.Logger
	pageSize int
	fallback func() []domain.Question

	questions []domain.Question
	user      *domain.User
	view      ViewState

	// loaded is set once LoadInitialState has installed a state.
	loaded bool

	// synced is set while the held questions descend from a successful
	// store read. Only then may they overwrite the stored collection.
	synced bool

	// now is overridable for testing.
	now func() time.Time
}

// NewBoard creates an empty board. Call LoadInitialState before serving.
func NewBoard(cfg BoardConfig) *Board {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.Board"))

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	return &Board{
		store:     cfg.Store,
		ids:       cfg.IDs,
		exec:      NewExecutor(logger),
		logger:    logger,
		pageSize:  pageSize,
		fallback:  cfg.Fallback,
		questions: []domain.Question{},
		view:      defaultView(),
		now:       time.Now,
	}
}

func defaultView() ViewState {
	return ViewState{SortBy: domain.SortNewest, Page: 1}
}

// LoadInitialState reads questions and user from the store concurrently.
//
// On the first load a store that fails or holds corrupt data is logged and
// replaced by the fallback collection and no user; startup is never blocked
// by it. Question saves stay paused until a later load succeeds, so the
// unread stored collection is never overwritten. On a reload a failed read
// keeps the state already held. The only error returned is the context's.
func (b *Board) LoadInitialState(ctx context.Context) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	logger := b.loggerFrom(ctx)

	questions, user := Settle2(ctx, b.store.LoadQuestions, b.store.LoadUser)

	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	switch {
	case questions.Err == nil:
		b.synced = true
	case b.loaded:
		logger.WarnContext(ctx, "reloading questions failed, keeping current collection",
			slog.Any("error", questions.Err),
		)

		questions.Value = b.questions
	default:
		logger.WarnContext(ctx, "loading questions failed, using fallback until a load succeeds",
			slog.Any("error", questions.Err),
		)

		questions.Value = b.fallbackQuestions()
		b.synced = false
	}

	if user.Err != nil {
		logger.WarnContext(ctx, "loading user failed, keeping current session",
			slog.Any("error", user.Err),
		)

		user.Value = b.user
	}

	if questions.Value == nil {
		questions.Value = []domain.Question{}
	}

	b.questions = questions.Value
	b.user = user.Value
	b.view = defaultView()
	b.loaded = true
	questionsHeld.Set(float64(len(b.questions)))

	logger.InfoContext(ctx, "board loaded",
		slog.Int("questions", len(b.questions)),
		slog.Bool("signed_in", b.user != nil),
		slog.Bool("synced", b.synced),
	)

	return b.snapshot(), nil
}

// Questions returns a copy of the whole collection.
func (b *Board) Questions() []domain.Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	return domain.CloneQuestions(b.questions)
}

// User returns a copy of the current user, or nil when signed out.
func (b *Board) User() *domain.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	return copyUser(b.user)
}

// Query runs the list pipeline over the collection without touching the
// held view state. A non-positive page size uses the board default.
func (b *Board) Query(ctx context.Context, p domain.QueryParams) ([]domain.Question, domain.PaginationInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query(ctx, p)
}

// View applies the held view state to the collection.
func (b *Board) View(ctx context.Context) ViewResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.currentView(ctx)
}

// UpdateView changes the held view state. Changing the search text, sort
// option or unanswered filter resets the page to 1, even when a page is
// given in the same change.
func (b *Board) UpdateView(ctx context.Context, change ViewChange) (ViewResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[ViewChange, ViewResult]{
		Name: "update_view",
		Validate: func(_ context.Context, c ViewChange) error {
			if c.SortBy != nil {
				if _, err := domain.ParseSortOption(string(*c.SortBy)); err != nil {
					return err
				}
			}

			if c.Page != nil && *c.Page < 1 {
				return domain.NewValidationErrorWithValue("page", "must be at least 1", *c.Page)
			}

			return nil
		},
		Perform: func(ctx context.Context, c ViewChange) (ViewResult, error) {
			b.view = applyViewChange(b.view, c)
			return b.currentView(ctx), nil
		},
	}, change)
}

func applyViewChange(v ViewState, c ViewChange) ViewState {
	next := v

	if c.Search != nil {
		next.Search = *c.Search
	}

	if c.SortBy != nil {
		// Validated by the caller.
		next.SortBy, _ = domain.ParseSortOption(string(*c.SortBy))
	}

	if c.UnansweredOnly != nil {
		next.UnansweredOnly = *c.UnansweredOnly
	}

	if c.Page != nil {
		next.Page = *c.Page
	}

	if next.Search != v.Search || next.SortBy != v.SortBy || next.UnansweredOnly != v.UnansweredOnly {
		next.Page = 1
	}

	return next
}

// AskQuestion adds a question authored by the current user to the top of
// the collection.
func (b *Board) AskQuestion(ctx context.Context, draft domain.QuestionDraft) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[domain.QuestionDraft, domain.Question]{
		Name: "ask_question",
		Perform: func(_ context.Context, d domain.QuestionDraft) (domain.Question, error) {
			next, err := domain.AskQuestion(b.questions, b.user, d, b.newEntity())
			if err != nil {
				return domain.Question{}, err
			}

			b.setQuestions(next)

			return next[0].Clone(), nil
		},
		Archive: archiveQuestions[domain.QuestionDraft](b),
	}, draft)
}

// OpenQuestion counts a detail view and returns the question with its
// answers ordered by votes.
func (b *Board) OpenQuestion(ctx context.Context, id string) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[string, domain.Question]{
		Name: "open_question",
		Perform: func(_ context.Context, id string) (domain.Question, error) {
			next, err := domain.RecordView(b.questions, id)
			if err != nil {
				return domain.Question{}, err
			}

			b.setQuestions(next)

			return b.find(id)
		},
		Archive: archiveQuestions[string](b),
		Respond: func(_ context.Context, _ string, q domain.Question) (domain.Question, error) {
			q.Answers = domain.SortAnswersByVotes(q.Answers)
			return q, nil
		},
	}, id)
}

// QuestionVote is the input of VoteQuestion.
type QuestionVote struct {
	QuestionID string
	Delta      int
}

// VoteQuestion adds +1 or -1 to a question's score.
func (b *Board) VoteQuestion(ctx context.Context, questionID string, delta int) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[QuestionVote, domain.Question]{
		Name: "vote_question",
		Perform: func(_ context.Context, v QuestionVote) (domain.Question, error) {
			next, err := domain.VoteQuestion(b.questions, v.QuestionID, v.Delta)
			if err != nil {
				return domain.Question{}, err
			}

			b.setQuestions(next)

			return b.find(v.QuestionID)
		},
		Archive: archiveQuestions[QuestionVote](b),
	}, QuestionVote{QuestionID: questionID, Delta: delta})
}

// AnswerVote is the input of VoteAnswer.
type AnswerVote struct {
	QuestionID string
	AnswerID   string
	Delta      int
}

// VoteAnswer adds +1 or -1 to an answer's score and returns the question
// holding it.
func (b *Board) VoteAnswer(ctx context.Context, questionID, answerID string, delta int) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[AnswerVote, domain.Question]{
		Name: "vote_answer",
		Perform: func(_ context.Context, v AnswerVote) (domain.Question, error) {
			next, err := domain.VoteAnswer(b.questions, v.QuestionID, v.AnswerID, v.Delta)
			if err != nil {
				return domain.Question{}, err
			}

			b.setQuestions(next)

			return b.find(v.QuestionID)
		},
		Archive: archiveQuestions[AnswerVote](b),
	}, AnswerVote{QuestionID: questionID, AnswerID: answerID, Delta: delta})
}

// NewAnswer is the input of AddAnswer.
type NewAnswer struct {
	QuestionID string
	Content    string
}

// AddAnswer appends an answer by the current user and returns the question
// holding it. The new answer is the last element of Answers.
func (b *Board) AddAnswer(ctx context.Context, questionID, content string) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[NewAnswer, domain.Question]{
		Name: "add_answer",
		Perform: func(_ context.Context, a NewAnswer) (domain.Question, error) {
			next, err := domain.AddAnswer(b.questions, b.user, a.QuestionID, a.Content, b.newEntity())
			if err != nil {
				return domain.Question{}, err
			}

			b.setQuestions(next)

			return b.find(a.QuestionID)
		},
		Archive: archiveQuestions[NewAnswer](b),
	}, NewAnswer{QuestionID: questionID, Content: content})
}

// Credentials is the input of Login and SetDisplayName.
type Credentials struct {
	Name  string
	Email string
}

// SetDisplayName replaces the current user with one that only has a name.
func (b *Board) SetDisplayName(ctx context.Context, name string) (domain.User, error) {
	return b.signIn(ctx, "set_display_name", Credentials{Name: name})
}

// Login replaces the current user with one that has a name and an email.
func (b *Board) Login(ctx context.Context, email, name string) (domain.User, error) {
	return b.signIn(ctx, "login", Credentials{Name: name, Email: email})
}

func (b *Board) signIn(ctx context.Context, name string, creds Credentials) (domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Execute(ctx, b.exec, Operation[Credentials, domain.User]{
		Name: name,
		Perform: func(ctx context.Context, c Credentials) (domain.User, error) {
			u, err := domain.NewUser(c.Name, c.Email)
			if err != nil {
				return domain.User{}, err
			}

			b.user = u
			logging.FromContext(ctx).InfoContext(ctx, "signed in", slog.Any("user", *u))

			return *u, nil
		},
		Archive: func(ctx context.Context, _ Credentials, u domain.User) error {
			return b.store.SaveUser(ctx, u)
		},
	}, creds)
}

// Logout forgets the current user and deletes the stored record. Content
// the user authored keeps its author name.
func (b *Board) Logout(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := Execute(ctx, b.exec, Operation[struct{}, struct{}]{
		Name: "logout",
		Perform: func(context.Context, struct{}) (struct{}, error) {
			b.user = nil
			return struct{}{}, nil
		},
		Archive: func(ctx context.Context, _, _ struct{}) error {
			return b.store.ClearUser(ctx)
		},
	}, struct{}{})

	return err
}

func archiveQuestions[I any](b *Board) func(context.Context, I, domain.Question) error {
	return func(ctx context.Context, _ I, _ domain.Question) error {
		if !b.synced {
			return ErrUnsynced
		}

		return b.store.SaveQuestions(ctx, b.questions)
	}
}

func (b *Board) query(ctx context.Context, p domain.QueryParams) ([]domain.Question, domain.PaginationInfo) {
	if p.PageSize <= 0 {
		p.PageSize = b.pageSize
	}

	page, info := domain.Query(b.questions, p)

	b.loggerFrom(ctx).Log(ctx, logging.LevelTrace, "query",
		slog.String("search", p.Search),
		slog.String("sort", string(p.SortBy)),
		slog.Bool("unanswered", p.UnansweredOnly),
		slog.Int("page", p.Page),
		slog.Int("matches", info.TotalItems),
	)

	return page, info
}

func (b *Board) currentView(ctx context.Context) ViewResult {
	page, info := b.query(ctx, domain.QueryParams{
		Search:         b.view.Search,
		SortBy:         b.view.SortBy,
		UnansweredOnly: b.view.UnansweredOnly,
		Page:           b.view.Page,
	})

	return ViewResult{State: b.view, Questions: page, Pagination: info}
}

func (b *Board) find(id string) (domain.Question, error) {
	q, ok := domain.FindQuestion(b.questions, id)
	if !ok {
		return domain.Question{}, domain.NewNotFoundError(domain.EntityQuestion, id)
	}

	return q.Clone(), nil
}

func (b *Board) setQuestions(qs []domain.Question) {
	b.questions = qs
	questionsHeld.Set(float64(len(qs)))
}

func (b *Board) newEntity() domain.NewEntity {
	return domain.NewEntity{ID: b.ids.NewID(), At: b.now().UTC()}
}

func (b *Board) fallbackQuestions() []domain.Question {
	if b.fallback == nil {
		return []domain.Question{}
	}

	return b.fallback()
}

func (b *Board) snapshot() State {
	return State{
		Questions: domain.CloneQuestions(b.questions),
		User:      copyUser(b.user),
	}
}

func (b *Board) loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, b.logger)
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}

	c := *u

	return &c
}
