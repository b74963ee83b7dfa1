package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

type deliveryHandler struct {
	deliveries portssvc.DeliveryLinkSvc
}

func registerDeliveryRoutes(rg *gin.RouterGroup, deliveries portssvc.DeliveryLinkSvc) {
	h := &deliveryHandler{deliveries: deliveries}
	rg.POST("/deliveries/:sale_id/cancel", h.cancelDelivery)
}

// cancelDelivery godoc
// @Summary Cancel a delivery
// @Description Called by the delivery subsystem. Cancels the order and voids its sale.
// @Tags deliveries
// @Accept  json
// @Produce  json
// @Param   sale_id path string true "Sale ID"
// @Param   cancel body dto.CancelDeliveryRequest true "Reason"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse "No delivery order for the sale"
// @Failure 409 {object} ErrorResponse "Delivery already final or sale not voidable"
// @Security BearerAuth
// @Router /deliveries/{sale_id}/cancel [post]
func (h *deliveryHandler) cancelDelivery(c *gin.Context) {
	saleID := c.Param("sale_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("sale_id", saleID))
	var req dto.CancelDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Failed to bind JSON for CancelDelivery", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	sale, err := h.deliveries.CancelDelivery(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondError(c, logger, "Failed to cancel delivery", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
