package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/stackit/internal/adapters/storage"
	"github.com/jsamuelsen/stackit/internal/app"
	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/platform/idgen"
)

// boardScenario holds state shared across step definitions within a scenario.
type boardScenario struct {
	repo  *storage.Repository
	board *app.Board
	err   error
	page  []domain.Question
	info  domain.PaginationInfo
}

func (s *boardScenario) newBoard() *app.Board {
	return app.NewBoard(app.BoardConfig{
		Store:  s.repo,
		IDs:    idgen.New(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *boardScenario) load(ctx context.Context, seed bool) error {
	s.repo = storage.NewRepository(storage.NewMemoryStore(), storage.RepositoryConfig{
		KeyPrefix: "stackit_",
		Seed:      seed,
	})
	s.board = s.newBoard()

	_, err := s.board.LoadInitialState(ctx)

	return err
}

func (s *boardScenario) theSampleBoard(ctx context.Context) error {
	return s.load(ctx, true)
}

func (s *boardScenario) anEmptyBoard(ctx context.Context) error {
	return s.load(ctx, false)
}

func (s *boardScenario) iAmSignedInAs(ctx context.Context, name string) error {
	_, err := s.board.SetDisplayName(ctx, name)
	return err
}

func (s *boardScenario) iAmSignedOut(ctx context.Context) error {
	return s.board.Logout(ctx)
}

// resolve finds a question by title first, then by id.
func (s *boardScenario) resolve(ref string) (domain.Question, error) {
	qs := s.board.Questions()
	for _, q := range qs {
		if q.Title == ref {
			return q, nil
		}
	}

	if q, ok := domain.FindQuestion(qs, ref); ok {
		return q, nil
	}

	return domain.Question{}, fmt.Errorf("no question %q on the board", ref)
}

func (s *boardScenario) questionID(ref string) string {
	if q, err := s.resolve(ref); err == nil {
		return q.ID
	}

	return ref
}

func (s *boardScenario) iAsk(ctx context.Context, title, description, tags string) error {
	_, s.err = s.board.AskQuestion(ctx, domain.QuestionDraft{
		Title:       title,
		Description: description,
		Tags:        domain.ParseTagList(tags),
	})

	return nil
}

func (s *boardScenario) questionsHaveBeenAsked(ctx context.Context, n int) error {
	for i := range n {
		_, err := s.board.AskQuestion(ctx, domain.QuestionDraft{
			Title:       fmt.Sprintf("Question %d", i+1),
			Description: "generated",
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func direction(dir string) int {
	if dir == "down" {
		return -1
	}

	return 1
}

func (s *boardScenario) iVoteQuestion(ctx context.Context, dir, ref string) error {
	_, s.err = s.board.VoteQuestion(ctx, s.questionID(ref), direction(dir))
	return s.err
}

func (s *boardScenario) answerAt(ref string, n int) (domain.Question, domain.Answer, error) {
	q, err := s.resolve(ref)
	if err != nil {
		return q, domain.Answer{}, err
	}

	if n < 1 || n > len(q.Answers) {
		return q, domain.Answer{}, fmt.Errorf("question %q has %d answers, wanted answer %d", ref, len(q.Answers), n)
	}

	return q, q.Answers[n-1], nil
}

func (s *boardScenario) iVoteAnswer(ctx context.Context, dir string, n int, ref string) error {
	q, a, err := s.answerAt(ref, n)
	if err != nil {
		return err
	}

	_, s.err = s.board.VoteAnswer(ctx, q.ID, a.ID, direction(dir))

	return s.err
}

func (s *boardScenario) iAnswer(ctx context.Context, ref, content string) error {
	_, s.err = s.board.AddAnswer(ctx, s.questionID(ref), content)
	return nil
}

func (s *boardScenario) iOpen(ctx context.Context, ref string) error {
	_, s.err = s.board.OpenQuestion(ctx, s.questionID(ref))
	return s.err
}

func (s *boardScenario) iSearchFor(ctx context.Context, search string) error {
	s.page, s.info = s.board.Query(ctx, domain.QueryParams{Search: search, Page: 1})
	return nil
}

func (s *boardScenario) iListPage(ctx context.Context, page int) error {
	s.page, s.info = s.board.Query(ctx, domain.QueryParams{Page: page})
	return nil
}

func (s *boardScenario) theBoardIsReloaded(ctx context.Context) error {
	s.board = s.newBoard()

	_, err := s.board.LoadInitialState(ctx)

	return err
}

func (s *boardScenario) questionHasVotes(ref string, votes int) error {
	q, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if q.Votes != votes {
		return fmt.Errorf("question %q has %d votes, expected %d", ref, q.Votes, votes)
	}

	return nil
}

func (s *boardScenario) questionHasViews(ref string, views int) error {
	q, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if q.Views != views {
		return fmt.Errorf("question %q has %d views, expected %d", ref, q.Views, views)
	}

	return nil
}

func (s *boardScenario) questionHasAnswers(ref string, n int) error {
	q, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if len(q.Answers) != n {
		return fmt.Errorf("question %q has %d answers, expected %d", ref, len(q.Answers), n)
	}

	return nil
}

func (s *boardScenario) questionHasTags(ref, tags string) error {
	q, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if got := strings.Join(q.Tags, ","); got != tags {
		return fmt.Errorf("question %q has tags %q, expected %q", ref, got, tags)
	}

	return nil
}

func (s *boardScenario) answerHasVotes(n int, ref string, votes int) error {
	_, a, err := s.answerAt(ref, n)
	if err != nil {
		return err
	}

	if a.Votes != votes {
		return fmt.Errorf("answer %d on %q has %d votes, expected %d", n, ref, a.Votes, votes)
	}

	return nil
}

func (s *boardScenario) theOperationFailsAs(kind string) error {
	checks := map[string]func(error) bool{
		"unauthenticated": domain.IsUnauthenticated,
		"not found":       domain.IsNotFound,
		"invalid":         domain.IsValidation,
	}

	if s.err == nil {
		return errors.New("expected the operation to fail")
	}

	if !checks[kind](s.err) {
		return fmt.Errorf("expected a %s error, got %v", kind, s.err)
	}

	return nil
}

func (s *boardScenario) theBoardHolds(n int) error {
	if got := len(s.board.Questions()); got != n {
		return fmt.Errorf("board holds %d questions, expected %d", got, n)
	}

	return nil
}

func (s *boardScenario) theNewestQuestionIsTitled(ctx context.Context, title string) error {
	page, _ := s.board.Query(ctx, domain.QueryParams{SortBy: domain.SortNewest, Page: 1})
	if len(page) == 0 || page[0].Title != title {
		return fmt.Errorf("newest question is not %q", title)
	}

	return nil
}

func (s *boardScenario) thereAreResults(n int) error {
	if len(s.page) != n {
		return fmt.Errorf("got %d results, expected %d", len(s.page), n)
	}

	return nil
}

func (s *boardScenario) thePaginationShows(pages, items int) error {
	if s.info.TotalPages != pages || s.info.TotalItems != items {
		return fmt.Errorf("pagination shows %d pages and %d items, expected %d and %d",
			s.info.TotalPages, s.info.TotalItems, pages, items)
	}

	return nil
}

func (s *boardScenario) nobodyIsSignedIn() error {
	if u := s.board.User(); u != nil {
		return fmt.Errorf("expected no user, got %q", u.Name)
	}

	return nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := &boardScenario{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = boardScenario{}
		return ctx, nil
	})

	ctx.Step(`^the sample board$`, s.theSampleBoard)
	ctx.Step(`^an empty board$`, s.anEmptyBoard)
	ctx.Step(`^I am signed in as "([^"]*)"$`, s.iAmSignedInAs)
	ctx.Step(`^I am signed out$`, s.iAmSignedOut)
	ctx.Step(`^I ask "([^"]*)" with description "([^"]*)" and tags "([^"]*)"$`, s.iAsk)
	ctx.Step(`^(\d+) questions have been asked$`, s.questionsHaveBeenAsked)
	ctx.Step(`^I (up|down)vote question "([^"]*)"$`, s.iVoteQuestion)
	ctx.Step(`^I (up|down)vote answer (\d+) on question "([^"]*)"$`, s.iVoteAnswer)
	ctx.Step(`^I answer question "([^"]*)" with "([^"]*)"$`, s.iAnswer)
	ctx.Step(`^I open question "([^"]*)"$`, s.iOpen)
	ctx.Step(`^I search for "([^"]*)"$`, s.iSearchFor)
	ctx.Step(`^I list page (\d+)$`, s.iListPage)
	ctx.Step(`^the board is reloaded from storage$`, s.theBoardIsReloaded)
	ctx.Step(`^question "([^"]*)" has (-?\d+) votes?$`, s.questionHasVotes)
	ctx.Step(`^question "([^"]*)" has (\d+) views$`, s.questionHasViews)
	ctx.Step(`^question "([^"]*)" has (\d+) answers?$`, s.questionHasAnswers)
	ctx.Step(`^question "([^"]*)" has tags "([^"]*)"$`, s.questionHasTags)
	ctx.Step(`^answer (\d+) on question "([^"]*)" has (-?\d+) votes?$`, s.answerHasVotes)
	ctx.Step(`^the operation fails as (unauthenticated|not found|invalid)$`, s.theOperationFailsAs)
	ctx.Step(`^the board holds (\d+) questions$`, s.theBoardHolds)
	ctx.Step(`^the newest question is titled "([^"]*)"$`, s.theNewestQuestionIsTitled)
	ctx.Step(`^there are (\d+) results$`, s.thereAreResults)
	ctx.Step(`^the pagination shows (\d+) pages? and (\d+) items$`, s.thePaginationShows)
	ctx.Step(`^nobody is signed in$`, s.nobodyIsSignedIn)
}

// TestFeatures runs the board scenarios under testdata/features.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"testdata/features"},
			TestingT:    t,
			Tags:        os.Getenv("GODOG_TAGS"),
			Strict:      true,
			Randomize:   time.Now().UnixNano(),
			Concurrency: 1,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
