package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackit/internal/adapters/http/dto"
	"github.com/jsamuelsen/stackit/internal/app"
)

// SessionHandler handles the current-user endpoints. A session is only a
// display identity; no credentials are checked.
type SessionHandler struct {
	board     *app.Board
	presenter dto.Presenter
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(board *app.Board) *SessionHandler {
	return &SessionHandler{
		board:     board,
		presenter: dto.NewPresenter(),
	}
}

// GetSession handles GET /api/v1/session.
//
// @Summary Get the current user
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /api/v1/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionResponse{User: h.presenter.User(h.board.User())})
}

// Login handles POST /api/v1/session.
//
// @Summary Sign in with a name and optional email
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/session [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.board.Login(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{User: h.presenter.User(&user)})
}

// SetDisplayName handles PUT /api/v1/session/name.
//
// @Summary Sign in with a display name only
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.DisplayNameRequest true "Display name"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/session/name [put]
func (h *SessionHandler) SetDisplayName(c *gin.Context) {
	var req dto.DisplayNameRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.board.SetDisplayName(c.Request.Context(), req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{User: h.presenter.User(&user)})
}

// Logout handles DELETE /api/v1/session.
//
// @Summary Sign out
// @Tags session
// @Success 204
// @Router /api/v1/session [delete]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.board.Logout(c.Request.Context()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the session routes on the given router group.
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	session.GET("", h.GetSession)
	session.POST("", h.Login)
	session.PUT("/name", h.SetDisplayName)
	session.DELETE("", h.Logout)
}
