package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

// cashHandler handles HTTP requests related to cash sessions.
type cashHandler struct {
	sessionService portssvc.CashSessionSvcFacade
}

func newCashHandler(cs portssvc.CashSessionSvcFacade) *cashHandler {
	return &cashHandler{sessionService: cs}
}

// registerCashRoutes registers routes related to cash sessions.
func registerCashRoutes(rg *gin.RouterGroup, sessionService portssvc.CashSessionSvcFacade) {
	h := newCashHandler(sessionService)

	cash := rg.Group("/cash")
	{
		cash.POST("/open", h.openSession)
		cash.POST("/handover/:id", h.recordHandover)
		cash.POST("/close/:id", h.closeSession)
		cash.GET("/current", h.getCurrentSession)
		cash.GET("/sessions", h.listSessions)
		cash.GET("/sessions/:id", h.getSession)
		cash.GET("/sessions/:id/summary", h.getSessionSummary)
	}
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens the drawer of a branch. The opening balance is the sum of the counted denominations.
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Opening count"
// @Success 201 {object} domain.CashSession
// @Failure 400 {object} ErrorResponse "Invalid denominations"
// @Failure 409 {object} ErrorResponse "Branch already has an open session"
// @Security BearerAuth
// @Router /cash/open [post]
func (h *cashHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for OpenSession", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("branch_id", req.BranchID))

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "Failed to open cash session", err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// recordHandover godoc
// @Summary Record a mid-shift handover
// @Tags cash
// @Accept  json
// @Param   id path string true "Session ID"
// @Param   handover body dto.HandoverRequest true "Handover count"
// @Success 204
// @Failure 409 {object} ErrorResponse "Session closed"
// @Security BearerAuth
// @Router /cash/handover/{id} [post]
func (h *cashHandler) recordHandover(c *gin.Context) {
	sessionID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", sessionID))
	var req dto.HandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for RecordHandover", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	if err := h.sessionService.RecordHandover(c.Request.Context(), sessionID, req, userID); err != nil {
		respondError(c, logger, "Failed to record handover", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// closeSession godoc
// @Summary Close a cash session
// @Description Reconciles the drawer. A variance is recorded and never blocks closing.
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   id path string true "Session ID"
// @Param   close body dto.CloseSessionRequest true "Closing count and declarations"
// @Success 200 {object} domain.CashSession
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Session already closed"
// @Security BearerAuth
// @Router /cash/close/{id} [post]
func (h *cashHandler) closeSession(c *gin.Context) {
	sessionID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", sessionID))
	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for CloseSession", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	session, err := h.sessionService.CloseSession(c.Request.Context(), sessionID, req, userID)
	if err != nil {
		respondError(c, logger, "Failed to close cash session", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// getCurrentSession godoc
// @Summary Get the open session of a branch
// @Tags cash
// @Produce  json
// @Param   branch_id query string true "Branch"
// @Success 200 {object} domain.CashSession
// @Success 204 "No open session"
// @Security BearerAuth
// @Router /cash/current [get]
func (h *cashHandler) getCurrentSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Query("branch_id")
	session, err := h.sessionService.GetCurrentSession(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, logger, "Failed to get current session", err)
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, session)
}

// listSessions godoc
// @Summary List session history
// @Tags cash
// @Produce  json
// @Param   branch_id query string true "Branch"
// @Param   from query string false "First day, YYYY-MM-DD"
// @Param   to query string false "Last day, YYYY-MM-DD"
// @Param   limit query int false "Maximum sessions" default(30)
// @Success 200 {array} domain.CashSession
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /cash/sessions [get]
func (h *cashHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for ListSessions", err)
		return
	}
	sessions, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list sessions", err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// getSession godoc
// @Summary Get a cash session
// @Tags cash
// @Produce  json
// @Param   id path string true "Session ID"
// @Success 200 {object} domain.CashSession
// @Failure 404 {object} ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /cash/sessions/{id} [get]
func (h *cashHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", c.Param("id")))
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to get session", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// getSessionSummary godoc
// @Summary Reconciliation summary of a session
// @Description Gross, voided and net totals per payment method
// @Tags cash
// @Produce  json
// @Param   id path string true "Session ID"
// @Success 200 {object} domain.SessionSummary
// @Failure 404 {object} ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /cash/sessions/{id}/summary [get]
func (h *cashHandler) getSessionSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", c.Param("id")))
	summary, err := h.sessionService.GetSessionSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to build session summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
