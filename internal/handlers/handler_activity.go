package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

type activityHandler struct {
	activity portssvc.ActivitySvc
}

func registerActivityRoutes(rg *gin.RouterGroup, activity portssvc.ActivitySvc) {
	h := &activityHandler{activity: activity}
	rg.GET("/activity", h.listActivity)
}

// listActivity godoc
// @Summary List the audit trail of a branch
// @Tags activity
// @Produce  json
// @Param   branch_id query string true "Branch"
// @Param   limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.ActivityLog
// @Failure 400 {object} ErrorResponse "Missing branch"
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) listActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Failed to bind query params for ListActivity", err)
		return
	}
	entries, err := h.activity.ListActivity(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list activity", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
