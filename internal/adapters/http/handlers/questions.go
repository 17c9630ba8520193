package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackit/internal/adapters/http/dto"
	"github.com/jsamuelsen/stackit/internal/app"
	"github.com/jsamuelsen/stackit/internal/domain"
)

// QuestionHandler handles the question board endpoints.
type QuestionHandler struct {
	board     *app.Board
	presenter dto.Presenter
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(board *app.Board) *QuestionHandler {
	return &QuestionHandler{
		board:     board,
		presenter: dto.NewPresenter(),
	}
}

// GetState handles GET /api/v1/state.
// Returns every question and the current user. With reload=true the board
// first re-reads both from storage; a failed read keeps what it holds.
//
// @Summary Get the board state
// @Tags board
// @Produce json
// @Param reload query bool false "Reload from storage first"
// @Success 200 {object} dto.StateResponse
// @Router /api/v1/state [get]
func (h *QuestionHandler) GetState(c *gin.Context) {
	if c.Query("reload") == "true" {
		state, err := h.board.LoadInitialState(c.Request.Context())
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.StateResponse{
			Questions: h.presenter.Questions(state.Questions),
			User:      h.presenter.User(state.User),
		})

		return
	}

	c.JSON(http.StatusOK, dto.StateResponse{
		Questions: h.presenter.Questions(h.board.Questions()),
		User:      h.presenter.User(h.board.User()),
	})
}

// ListQuestions handles GET /api/v1/questions.
// Runs the search, filter, sort and pagination pipeline without touching
// the board's view state.
//
// @Summary List questions
// @Tags questions
// @Produce json
// @Param search query string false "Case-insensitive text or tag search"
// @Param sort query string false "newest, votes or answers"
// @Param unanswered query bool false "Only questions without answers"
// @Param page query int false "1-based page"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} dto.PageResponse[dto.QuestionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var req dto.ListQuestionsRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	sortBy, err := domain.ParseSortOption(req.Sort)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	questions, info := h.board.Query(c.Request.Context(), domain.QueryParams{
		Search:         req.Search,
		SortBy:         sortBy,
		UnansweredOnly: req.Unanswered,
		Page:           req.GetPage(),
		PageSize:       req.GetPageSize(),
	})

	c.JSON(http.StatusOK, dto.NewPageResponse(questions, info, h.presenter.Question))
}

// GetQuestion handles GET /api/v1/questions/:id.
// Opening a question counts a view; answers come back highest voted first.
//
// @Summary Open a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	q, err := h.board.OpenQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.presenter.Question(q))
}

// AskQuestion handles POST /api/v1/questions.
//
// @Summary Ask a question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.AskQuestionRequest true "New question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/questions [post]
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var req dto.AskQuestionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	q, err := h.board.AskQuestion(c.Request.Context(), domain.QuestionDraft{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/questions/"+q.ID)
	c.JSON(http.StatusCreated, h.presenter.Question(q))
}

// VoteQuestion handles POST /api/v1/questions/:id/votes.
//
// @Summary Vote on a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.VoteRequest true "Vote"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/questions/{id}/votes [post]
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	var req dto.VoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	q, err := h.board.VoteQuestion(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.presenter.Question(q))
}

// AddAnswer handles POST /api/v1/questions/:id/answers.
//
// @Summary Answer a question
// @Tags answers
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.AddAnswerRequest true "Answer"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/questions/{id}/answers [post]
func (h *QuestionHandler) AddAnswer(c *gin.Context) {
	var req dto.AddAnswerRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	q, err := h.board.AddAnswer(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.presenter.Question(q))
}

// VoteAnswer handles POST /api/v1/questions/:id/answers/:answerId/votes.
//
// @Summary Vote on an answer
// @Tags answers
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param answerId path string true "Answer ID"
// @Param request body dto.VoteRequest true "Vote"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/questions/{id}/answers/{answerId}/votes [post]
func (h *QuestionHandler) VoteAnswer(c *gin.Context) {
	var req dto.VoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	q, err := h.board.VoteAnswer(c.Request.Context(), c.Param("id"), c.Param("answerId"), req.Delta)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.presenter.Question(q))
}

// GetView handles GET /api/v1/view.
// Returns the page selected by the board's held view state.
//
// @Summary Get the current list view
// @Tags board
// @Produce json
// @Success 200 {object} dto.ViewResponse
// @Router /api/v1/view [get]
func (h *QuestionHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.toViewResponse(h.board.View(c.Request.Context())))
}

// UpdateView handles PATCH /api/v1/view.
// Changing the search, sort or unanswered filter moves back to page 1.
//
// @Summary Update the current list view
// @Tags board
// @Accept json
// @Produce json
// @Param request body dto.UpdateViewRequest true "View change"
// @Success 200 {object} dto.ViewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/view [patch]
func (h *QuestionHandler) UpdateView(c *gin.Context) {
	var req dto.UpdateViewRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	change := app.ViewChange{
		Search:         req.Search,
		UnansweredOnly: req.Unanswered,
		Page:           req.Page,
	}

	if req.Sort != nil {
		sortBy, err := domain.ParseSortOption(*req.Sort)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		change.SortBy = &sortBy
	}

	result, err := h.board.UpdateView(c.Request.Context(), change)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toViewResponse(result))
}

func (h *QuestionHandler) toViewResponse(v app.ViewResult) dto.ViewResponse {
	return dto.ViewResponse{
		Search:     v.State.Search,
		Sort:       string(v.State.SortBy),
		Unanswered: v.State.UnansweredOnly,
		Questions:  h.presenter.Questions(v.Questions),
		Pagination: dto.NewPagination(v.Pagination),
	}
}

// RegisterRoutes registers the board routes on the given router group.
func (h *QuestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/state", h.GetState)
	rg.GET("/view", h.GetView)
	rg.PATCH("/view", h.UpdateView)

	questions := rg.Group("/questions")
	questions.GET("", h.ListQuestions)
	questions.POST("", h.AskQuestion)
	questions.GET("/:id", h.GetQuestion)
	questions.POST("/:id/votes", h.VoteQuestion)
	questions.POST("/:id/answers", h.AddAnswer)
	questions.POST("/:id/answers/:answerId/votes", h.VoteAnswer)
}

// respondBindError writes a 400 for a request that failed binding or tag
// validation.
func respondBindError(c *gin.Context, err error) {
	traceID := dto.GetTraceID(c)

	if dto.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			dto.ValidationErrors(err),
		).WithTraceID(traceID))

		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"malformed request",
	).WithTraceID(traceID))
}
