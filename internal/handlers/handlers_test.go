package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/handlers"
	"github.com/SscSPs/vetpos_backend/internal/platform/config"
)

const (
	testUserID   = "cashier-1"
	testBranchID = "branch-a"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	jwtSecret    string
	saleSvc      *MockSaleService
	cashSvc      *MockCashSessionService
	stockSvc     *MockStockService
	activitySvc  *MockActivityService
	container    *portssvc.ServiceContainer
	defaultToken string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "vetpos-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(r, cfg, suite.container))
	return r
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.saleSvc = new(MockSaleService)
	suite.cashSvc = new(MockCashSessionService)
	suite.stockSvc = new(MockStockService)
	suite.activitySvc = new(MockActivityService)
	suite.container = &portssvc.ServiceContainer{
		Sale:        suite.saleSvc,
		CashSession: suite.cashSvc,
		Stock:       suite.stockSvc,
		Activity:    suite.activitySvc,
	}

	suite.router = suite.newRouter(&config.Config{JWTSecret: suite.jwtSecret, IsProduction: true})
	suite.defaultToken = suite.generateTestToken(testUserID)
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.defaultToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.saleSvc.AssertNotCalled(suite.T(), "ListSales", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSale_Success() {
	sale := &domain.Sale{
		SaleID:        "sale-1",
		BranchID:      testBranchID,
		Total:         decimal.NewFromInt(2000),
		PaymentMethod: domain.PaymentCash,
		Status:        domain.SaleCompleted,
	}
	suite.saleSvc.On("CreateSale", mock.Anything,
		mock.MatchedBy(func(r dto.CreateSaleRequest) bool {
			return r.BranchID == testBranchID && len(r.Items) == 1 && r.Items[0].Quantity == 2
		}),
		testUserID,
	).Return(sale, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"branchID":      testBranchID,
		"paymentMethod": "CASH",
		"items":         []map[string]any{{"productID": "kibble", "quantity": 2}},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var got domain.Sale
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("sale-1", got.SaleID)
	suite.True(got.Total.Equal(decimal.NewFromInt(2000)))
	suite.saleSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateSale_InsufficientStock() {
	suite.saleSvc.On("CreateSale", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.NewInsufficientStock(testBranchID, "kibble", 3, 2)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"branchID":      testBranchID,
		"paymentMethod": "CASH",
		"items":         []map[string]any{{"productID": "kibble", "quantity": 3}},
	})

	suite.Equal(http.StatusConflict, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("INSUFFICIENT_STOCK", resp.Error)
	suite.Equal("kibble", resp.Details["productID"])
	suite.Equal(float64(2), resp.Details["available"])
	suite.Equal(float64(3), resp.Details["requested"])
	suite.False(resp.Retryable)
}

func (suite *HandlerTestSuite) TestCreateSale_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/sales", `{"branchID":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION", suite.decodeError(w).Error)
	suite.saleSvc.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSale_ConflictIsRetryable() {
	suite.saleSvc.On("CreateSale", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrConcurrencyConflict).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"branchID":      testBranchID,
		"paymentMethod": "CASH",
		"items":         []map[string]any{{"productID": "kibble", "quantity": 1}},
	})

	suite.Equal(http.StatusConflict, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("CONCURRENCY_CONFLICT", resp.Error)
	suite.True(resp.Retryable)
}

func (suite *HandlerTestSuite) TestVoidSale_NotVoidable() {
	suite.saleSvc.On("VoidSale", mock.Anything, "sale-1", dto.VoidSaleRequest{Reason: "mistake"}, testUserID).
		Return(nil, apperrors.ErrSaleNotVoidable).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales/sale-1/void", map[string]any{"reason": "mistake"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("SALE_NOT_VOIDABLE", suite.decodeError(w).Error)
	suite.saleSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListSales_OwnSalesForDay() {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	suite.saleSvc.On("ListSales", mock.Anything,
		mock.MatchedBy(func(p dto.ListSalesParams) bool {
			return p.Mine && p.From.Equal(day) && p.To.Equal(day) && p.BranchID == testBranchID
		}),
		testUserID,
	).Return(&dto.ListSalesResponse{Sales: []domain.Sale{{SaleID: "sale-1"}}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/sales?branch_id="+testBranchID+"&mine=true&from=2026-05-04&to=2026-05-04", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListSalesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Sales, 1)
	suite.saleSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListSales_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/sales?from=05-04-2026", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.saleSvc.AssertNotCalled(suite.T(), "ListSales", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetSale_NotFound() {
	suite.saleSvc.On("GetSale", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/sales/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCancelDelivery() {
	suite.saleSvc.On("CancelDelivery", mock.Anything, "sale-9", dto.CancelDeliveryRequest{Reason: "customer absent"}, testUserID).
		Return(&domain.Sale{SaleID: "sale-9", Status: domain.SaleVoided}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/deliveries/sale-9/cancel", map[string]any{"reason": "customer absent"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var got domain.Sale
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.SaleVoided, got.Status)
}

func (suite *HandlerTestSuite) TestOpenSession_Success() {
	opened := &domain.CashSession{SessionID: "s-1", BranchID: testBranchID, Status: domain.SessionOpen, OpeningBalance: decimal.NewFromInt(20000)}
	suite.cashSvc.On("OpenSession", mock.Anything,
		mock.MatchedBy(func(r dto.OpenSessionRequest) bool {
			return r.BranchID == testBranchID && r.OpeningDenominations[10000] == 2
		}),
		testUserID,
	).Return(opened, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash/open", `{"branchID":"branch-a","openingDenominations":{"10000":2}}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.cashSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestOpenSession_RejectsBadDenominations() {
	w := suite.do(http.MethodPost, "/api/v1/cash/open", `{"branchID":"branch-a","openingDenominations":{"-500":1}}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.cashSvc.AssertNotCalled(suite.T(), "OpenSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestOpenSession_RejectsOverflowingDenominations() {
	w := suite.do(http.MethodPost, "/api/v1/cash/open", `{"branchID":"branch-a","openingDenominations":{"4611686018427387904":4}}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.cashSvc.AssertNotCalled(suite.T(), "OpenSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestOpenSession_AlreadyOpen() {
	suite.cashSvc.On("OpenSession", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrSessionAlreadyOpen).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash/open", `{"branchID":"branch-a","openingDenominations":{}}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("SESSION_ALREADY_OPEN", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestHandover() {
	suite.cashSvc.On("RecordHandover", mock.Anything, "s-1",
		mock.MatchedBy(func(r dto.HandoverRequest) bool { return r.TargetUserID == "cashier-2" }),
		testUserID,
	).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash/handover/s-1", `{"targetUserID":"cashier-2","denominations":{"1000":5}}`)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.cashSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCloseSession() {
	variance := decimal.NewFromInt(-2500)
	closed := &domain.CashSession{SessionID: "s-1", Status: domain.SessionClosed, Variance: &variance}
	suite.cashSvc.On("CloseSession", mock.Anything, "s-1",
		mock.MatchedBy(func(r dto.CloseSessionRequest) bool {
			return r.ClosingDenominations[1000] == 9 && r.ManualExpenses.Equal(decimal.NewFromInt(500))
		}),
		testUserID,
	).Return(closed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash/close/s-1", `{"closingDenominations":{"1000":9},"manualExpenses":500}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var got domain.CashSession
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.SessionClosed, got.Status)
	suite.Require().NotNil(got.Variance)
	suite.True(got.Variance.Equal(variance))
}

func (suite *HandlerTestSuite) TestCloseSession_AlreadyClosed() {
	suite.cashSvc.On("CloseSession", mock.Anything, "s-1", mock.Anything, testUserID).
		Return(nil, apperrors.ErrSessionClosed).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash/close/s-1", `{"closingDenominations":{}}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("SESSION_CLOSED", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCurrentSession_NoneOpen() {
	suite.cashSvc.On("GetCurrentSession", mock.Anything, testBranchID).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/cash/current?branch_id="+testBranchID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *HandlerTestSuite) TestListSessions_RequiresBranch() {
	w := suite.do(http.MethodGet, "/api/v1/cash/sessions", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.cashSvc.AssertNotCalled(suite.T(), "ListSessions", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApplyMovement() {
	result := &domain.MovementResult{Entries: []domain.StockEntry{{BranchID: testBranchID, ProductID: "kibble", Quantity: 15, Version: 2}}}
	suite.stockSvc.On("ApplyMovement", mock.Anything,
		mock.MatchedBy(func(r dto.CreateMovementRequest) bool {
			return r.Type == domain.MovementIn && r.Quantity == 10
		}),
		testUserID,
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/inventory/movements", map[string]any{
		"type":       "IN",
		"productID":  "kibble",
		"quantity":   10,
		"toBranchID": testBranchID,
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.stockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApplyMovement_ReservedType() {
	w := suite.do(http.MethodPost, "/api/v1/inventory/movements", map[string]any{
		"type":      "SALE",
		"productID": "kibble",
		"quantity":  1,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.stockSvc.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApplyMovement_QuantityAboveIntegerRange() {
	w := suite.do(http.MethodPost, "/api/v1/inventory/movements", map[string]any{
		"type":       "IN",
		"productID":  "kibble",
		"quantity":   int64(2147483648),
		"toBranchID": testBranchID,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.stockSvc.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestVerifyStock() {
	suite.stockSvc.On("VerifyStock", mock.Anything, testBranchID, "kibble").
		Return(&domain.StockVerification{BranchID: testBranchID, ProductID: "kibble", Stored: 5, FromLedger: 5, Consistent: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/inventory/stock/verify?branch_id=branch-a&product_id=kibble", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.StockVerification
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Consistent)

	w = suite.do(http.MethodGet, "/api/v1/inventory/stock/verify?branch_id=branch-a", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLowStock_RequiresBranch() {
	w := suite.do(http.MethodGet, "/api/v1/inventory/alerts", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.stockSvc.AssertNotCalled(suite.T(), "ListLowStock", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListActivity() {
	entries := []domain.ActivityLog{{ActivityID: "a-1", BranchID: testBranchID, Action: domain.ActivitySale}}
	suite.activitySvc.On("ListActivity", mock.Anything, dto.ListActivityParams{BranchID: testBranchID, Limit: 10}).
		Return(entries, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/activity?branch_id=branch-a&limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got []domain.ActivityLog
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 1)
	suite.activitySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRateLimit() {
	r := suite.newRouter(&config.Config{JWTSecret: suite.jwtSecret, IsProduction: true, RateLimit: "1-M"})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil))
	suite.Equal(http.StatusUnauthorized, first.Code)
	suite.Equal("1", first.Header().Get("X-RateLimit-Limit"))
	suite.Equal("0", first.Header().Get("X-RateLimit-Remaining"))

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil))
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.NotEmpty(second.Header().Get("Retry-After"))
}

func (suite *HandlerTestSuite) TestInvalidRateLimit() {
	err := handlers.RegisterRoutes(gin.New(), &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true, RateLimit: "lots"}, suite.container)
	suite.Error(err)
}

func (suite *HandlerTestSuite) TestCORSPreflight() {
	r := suite.newRouter(&config.Config{
		JWTSecret:          suite.jwtSecret,
		IsProduction:       true,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	})

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/sales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal("http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
