package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
	"github.com/dhanashri-code/expense-tracker/internal/handlers"
	"github.com/dhanashri-code/expense-tracker/internal/platform/config"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseService) AddInstallment(ctx context.Context, expenseID string, req dto.AddInstallmentRequest) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GroupExpensesByTitle(ctx context.Context) ([]domain.ExpenseGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseGroup), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock InsightService ---
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) GetDashboardInsights(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardInsights, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardInsights), args.Error(1)
}

func (m *MockInsightService) GetMonthlyOverview(ctx context.Context) (*domain.MonthlyOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyOverview), args.Error(1)
}

func (m *MockInsightService) SummarizeInsights(req dto.SummarizeInsightsRequest) string {
	args := m.Called(req)
	return args.String(0)
}

var _ portssvc.InsightSvcFacade = (*MockInsightService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) PredictCategory(title string) string {
	args := m.Called(title)
	return args.String(0)
}

func (m *MockCategoryService) ResolveCategory(category, predicted string) string {
	args := m.Called(category, predicted)
	return args.String(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// newTestRouter wires the full route table against mock services.
func newTestRouter(cfg *config.Config, expense *MockExpenseService, insight *MockInsightService, category *MockCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{
		Expense:  expense,
		Insight:  insight,
		Category: category,
	})
	return router
}

// --- Test Suite ---

type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	mockInsightService *MockInsightService
	mockCategorySvc    *MockCategoryService
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	suite.mockExpenseService = new(MockExpenseService)
	suite.mockInsightService = new(MockInsightService)
	suite.mockCategorySvc = new(MockCategoryService)

	cfg := &config.Config{IsProduction: true}
	suite.router = newTestRouter(cfg, suite.mockExpenseService, suite.mockInsightService, suite.mockCategorySvc)
}

func (suite *ExpenseHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ExpenseHandlerTestSuite) TestHome() {
	w := suite.serve(http.MethodGet, "/", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Server is running!", w.Body.String())
}

func (suite *ExpenseHandlerTestSuite) TestHealth() {
	w := suite.serve(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Success() {
	now := time.Now().UTC()
	expense := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		Title:        "Office Rent",
		Amount:       decimal.NewFromInt(5000),
		Type:         domain.Debit,
		Category:     "Rent",
		PaymentType:  domain.PaymentInstallment,
		Date:         now,
		Installments: []domain.Installment{},
		CreatedAt:    now,
	}

	suite.mockExpenseService.On("CreateExpense", mock.Anything, mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
		return req.Title == "Office Rent" && req.Type == domain.Debit
	})).Return(expense, nil).Once()

	w := suite.serve(http.MethodPost, "/expenses", gin.H{
		"title":       "Office Rent",
		"amount":      5000,
		"type":        "debit",
		"paymentType": "installment",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expense.ExpenseID, resp.ExpenseID)
	suite.True(resp.TotalPaid.IsZero())
	suite.True(decimal.NewFromInt(5000).Equal(resp.Remaining))
	suite.Equal(domain.StatusPending, resp.Status)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_BadJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/expenses", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ValidationError() {
	suite.mockExpenseService.On("CreateExpense", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.serve(http.MethodPost, "/expenses", gin.H{
		"title":  "Zero",
		"amount": 1,
		"type":   "debit",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses() {
	expenses := []domain.Expense{
		{ExpenseID: "e1", Title: "Fuel", Amount: decimal.NewFromInt(300), Type: domain.Debit, PaymentType: domain.PaymentCash},
		{ExpenseID: "e2", Title: "Sale", Amount: decimal.NewFromInt(900), Type: domain.Credit, PaymentType: domain.PaymentOnline},
	}

	suite.mockExpenseService.On("ListExpenses", mock.Anything, mock.MatchedBy(func(p dto.ListExpensesParams) bool {
		return p.Type == "debit" && p.Category == "Fuel"
	})).Return(expenses, nil).Once()

	w := suite.serve(http.MethodGet, "/expenses?type=debit&category=Fuel", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("e1", resp[0].ExpenseID)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestGroupedExpenses() {
	groups := []domain.ExpenseGroup{
		{Title: "Rent", Expenses: []domain.Expense{
			{ExpenseID: "e1", Title: "Rent", Amount: decimal.NewFromInt(5000), Type: domain.Debit, PaymentType: domain.PaymentCash},
		}},
	}

	suite.mockExpenseService.On("GroupExpensesByTitle", mock.Anything).Return(groups, nil).Once()

	w := suite.serve(http.MethodGet, "/expenses/grouped", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.ExpenseGroupResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Rent", resp[0].Title)
	suite.Len(resp[0].Transactions, 1)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/expenses/"+expenseID, nil)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Expense not found", resp.Error)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestUpdateExpense_NotFound() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("UpdateExpense", mock.Anything, expenseID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPut, "/expenses/"+expenseID, gin.H{
		"title":  "Ghost",
		"amount": 100,
		"type":   "debit",
	})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("DeleteExpense", mock.Anything, expenseID).Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/expenses/"+expenseID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DeleteExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Expense deleted", resp.Message)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestAddInstallment_Success() {
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:   expenseID,
		Title:       "Office Rent",
		Amount:      decimal.NewFromInt(5000),
		Type:        domain.Debit,
		PaymentType: domain.PaymentInstallment,
		Installments: []domain.Installment{
			{InstallmentID: uuid.NewString(), Amount: decimal.NewFromInt(2000), PaidAmount: decimal.NewFromInt(2000)},
		},
	}

	suite.mockExpenseService.On("AddInstallment", mock.Anything, expenseID, mock.MatchedBy(func(req dto.AddInstallmentRequest) bool {
		return decimal.NewFromInt(2000).Equal(req.Amount)
	})).Return(expense, nil).Once()

	w := suite.serve(http.MethodPost, "/installments/"+expenseID, gin.H{"amount": 2000})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.NewFromInt(2000).Equal(resp.TotalPaid))
	suite.True(decimal.NewFromInt(3000).Equal(resp.Remaining))
	suite.Equal(domain.StatusPending, resp.Status)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestAddInstallment_CreditRejected() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("AddInstallment", mock.Anything, expenseID, mock.Anything).
		Return(nil, apperrors.ErrInvalidOperation).Once()

	w := suite.serve(http.MethodPost, "/installments/"+expenseID, gin.H{"amount": 100})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Installments allowed only for debit expenses", resp.Error)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestAddInstallment_NotFound() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("AddInstallment", mock.Anything, expenseID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPost, "/installments/"+expenseID, gin.H{"amount": 100})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func TestExpenseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
