package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string         `json:"error"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
	{apperrors.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
	{apperrors.ErrDebtRequiresCustomer, http.StatusBadRequest, "DEBT_REQUIRES_CUSTOMER"},
	{apperrors.ErrNoOpenSession, http.StatusConflict, "NO_OPEN_SESSION"},
	{apperrors.ErrSessionAlreadyOpen, http.StatusConflict, "SESSION_ALREADY_OPEN"},
	{apperrors.ErrSessionClosed, http.StatusConflict, "SESSION_CLOSED"},
	{apperrors.ErrSaleNotVoidable, http.StatusConflict, "SALE_NOT_VOIDABLE"},
	{apperrors.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION"},
	{apperrors.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
	{apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
}

// mapError translates err into a status and response body.
func mapError(err error) (int, ErrorResponse) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := ErrorResponse{Error: m.code, Message: err.Error()}
		var shortfall *apperrors.InsufficientStockError
		if errors.As(err, &shortfall) {
			resp.Details = map[string]any{
				"branchID":  shortfall.BranchID,
				"productID": shortfall.ProductID,
				"requested": shortfall.Requested,
				"available": shortfall.Available,
			}
		}
		if m.target == apperrors.ErrConcurrencyConflict {
			resp.Retryable = true
		}
		return m.status, resp
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorResponse{Error: "TIMEOUT", Message: "request timed out", Retryable: true}
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code, ErrorResponse{Error: http.StatusText(appErr.Code), Message: appErr.Message}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL", Message: "internal server error"}
}

// respondError logs err at a level matching its status and writes the body.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION", Message: err.Error()})
}

func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}
