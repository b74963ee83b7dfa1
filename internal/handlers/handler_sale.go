package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.POST("/:id/void", h.voidSale)
	}
}

// createSale godoc
// @Summary Check out a cart
// @Description Debits stock, records the sale and adds it to the open cash session in one transaction
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Cart"
// @Success 201 {object} domain.Sale
// @Failure 400 {object} ErrorResponse "Validation error, empty cart or debt without customer"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 409 {object} ErrorResponse "Insufficient stock, no open session or concurrency conflict"
// @Failure 500 {object} ErrorResponse "Failed to create sale"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for CreateSale", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("branch_id", req.BranchID))
	logger.Info("Received request to create sale", slog.Int("items", len(req.Items)), slog.String("payment_method", string(req.PaymentMethod)))

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, "Failed to create sale", err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// listSales godoc
// @Summary List sales
// @Description Lists sales newest first with token pagination. Filters by branch, session, status, creator and day range.
// @Tags sales
// @Produce  json
// @Param   branch_id query string false "Branch"
// @Param   cash_session_id query string false "Cash session"
// @Param   status query string false "COMPLETED or VOIDED"
// @Param   created_by query string false "Creator user ID"
// @Param   mine query bool false "Only the caller's own sales"
// @Param   from query string false "First day (YYYY-MM-DD)"
// @Param   to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for ListSales", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	resp, err := h.saleService.ListSales(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, logger, "Failed to list sales", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("sale_id", c.Param("id")))
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to get sale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// voidSale godoc
// @Summary Void a completed sale
// @Description Credits the sale's stock back and marks it VOIDED. Session accumulators are kept.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   void body dto.VoidSaleRequest true "Reason"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 409 {object} ErrorResponse "Sale is not voidable"
// @Security BearerAuth
// @Router /sales/{id}/void [post]
func (h *saleHandler) voidSale(c *gin.Context) {
	saleID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("sale_id", saleID))
	var req dto.VoidSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for VoidSale", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	sale, err := h.saleService.VoidSale(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondError(c, logger, "Failed to void sale", err)
		return
	}
	logger.Info("Sale voided")
	c.JSON(http.StatusOK, sale)
}
