package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

// stockHandler handles HTTP requests related to inventory.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers routes related to inventory.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/movements", h.applyMovement)
		inventory.GET("/movements", h.listMovements)
		inventory.GET("/stock", h.getStock)
		inventory.GET("/stock/verify", h.verifyStock)
		inventory.GET("/alerts", h.listLowStock)
	}
}

// applyMovement godoc
// @Summary Post a manual stock movement
// @Description IN, OUT or TRANSFER. A transfer is stored as an OUT and an IN leg sharing a transfer id.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} domain.MovementResult
// @Failure 400 {object} ErrorResponse "Invalid movement"
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /inventory/movements [post]
func (h *stockHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for ApplyMovement", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("product_id", req.ProductID), slog.String("type", string(req.Type)))

	result, err := h.stockService.ApplyMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "Failed to apply movement", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listMovements godoc
// @Summary List stock movements
// @Tags inventory
// @Produce  json
// @Param   branch_id query string false "Branch"
// @Param   product_id query string false "Product"
// @Param   type query string false "Movement type"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Security BearerAuth
// @Router /inventory/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for ListMovements", err)
		return
	}
	resp, err := h.stockService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list movements", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStock godoc
// @Summary List stock entries
// @Tags inventory
// @Produce  json
// @Param   branch_id query string false "Branch"
// @Param   product_id query string false "Product"
// @Success 200 {array} domain.StockEntry
// @Security BearerAuth
// @Router /inventory/stock [get]
func (h *stockHandler) getStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.StockQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for GetStock", err)
		return
	}
	entries, err := h.stockService.GetStock(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to get stock", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// verifyStock godoc
// @Summary Reconcile a stock entry against the movement ledger
// @Tags inventory
// @Produce  json
// @Param   branch_id query string true "Branch"
// @Param   product_id query string true "Product"
// @Success 200 {object} domain.StockVerification
// @Failure 400 {object} ErrorResponse "Missing branch or product"
// @Security BearerAuth
// @Router /inventory/stock/verify [get]
func (h *stockHandler) verifyStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.VerifyStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for VerifyStock", err)
		return
	}
	verification, err := h.stockService.VerifyStock(c.Request.Context(), params.BranchID, params.ProductID)
	if err != nil {
		respondError(c, logger, "Failed to verify stock", err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

// listLowStock godoc
// @Summary List entries at or below their alert threshold
// @Tags inventory
// @Produce  json
// @Param   branch_id query string true "Branch"
// @Success 200 {array} domain.LowStockEntry
// @Security BearerAuth
// @Router /inventory/alerts [get]
func (h *stockHandler) listLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION", Message: "branch_id is required"})
		return
	}
	low, err := h.stockService.ListLowStock(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, logger, "Failed to list low stock", err)
		return
	}
	c.JSON(http.StatusOK, low)
}
