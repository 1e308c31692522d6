package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
	"github.com/dhanashri-code/expense-tracker/internal/handlers"
	"github.com/dhanashri-code/expense-tracker/internal/platform/config"
)

type InsightHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	mockInsightService *MockInsightService
	mockCategorySvc    *MockCategoryService
}

func (suite *InsightHandlerTestSuite) SetupTest() {
	suite.mockExpenseService = new(MockExpenseService)
	suite.mockInsightService = new(MockInsightService)
	suite.mockCategorySvc = new(MockCategoryService)

	cfg := &config.Config{IsProduction: true}
	suite.router = newTestRouter(cfg, suite.mockExpenseService, suite.mockInsightService, suite.mockCategorySvc)
}

func (suite *InsightHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
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

func (suite *InsightHandlerTestSuite) TestDashboard_DefaultFilter() {
	insights := &domain.DashboardInsights{
		TotalAmount: decimal.NewFromInt(250),
		TotalCredit: decimal.NewFromInt(50),
		TotalDebit:  decimal.NewFromInt(200),
		CountCredit: 1,
		CountDebit:  2,
		Series:      []domain.SeriesPoint{{Bucket: "2026-08-19T00:00:00Z", Amount: decimal.NewFromInt(250)}},
		Payments:    []domain.BreakdownEntry{{Name: "cash", Value: decimal.NewFromInt(250)}},
		Categories:  []domain.BreakdownEntry{{Name: "Fuel", Value: decimal.NewFromInt(250)}},
		Payables:    []domain.BreakdownEntry{{Name: "Fuel", Value: decimal.NewFromInt(200)}},
	}

	suite.mockInsightService.On("GetDashboardInsights", mock.Anything, mock.MatchedBy(func(f domain.DashboardFilter) bool {
		return f.Period == domain.PeriodAll && f.CustomRange == nil
	})).Return(insights, nil).Once()

	w := suite.serve(http.MethodGet, "/insights/dashboard", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.NewFromInt(250).Equal(resp.TotalAmount))
	suite.Equal(2, resp.CountDebit)
	suite.Require().Len(resp.MonthlyData, 1)
	suite.Equal("2026-08-19T00:00:00Z", resp.MonthlyData[0].Bucket)
	suite.Require().Len(resp.PayableData, 1)
	suite.True(decimal.NewFromInt(200).Equal(resp.PayableData[0].Amount))

	suite.mockInsightService.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestDashboard_UnknownFilterFallsBackToAll() {
	suite.mockInsightService.On("GetDashboardInsights", mock.Anything, mock.MatchedBy(func(f domain.DashboardFilter) bool {
		return f.Period == domain.PeriodAll
	})).Return(&domain.DashboardInsights{}, nil).Once()

	w := suite.serve(http.MethodGet, "/insights/dashboard?filter=fortnight", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockInsightService.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestDashboard_UnknownFilterStrictMode() {
	cfg := &config.Config{IsProduction: true, StrictFilter: true}
	router := newTestRouter(cfg, suite.mockExpenseService, suite.mockInsightService, suite.mockCategorySvc)

	req, _ := http.NewRequest(http.MethodGet, "/insights/dashboard?filter=fortnight", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Unknown filter value: fortnight", resp.Error)

	suite.mockInsightService.AssertNotCalled(suite.T(), "GetDashboardInsights", mock.Anything, mock.Anything)
}

func (suite *InsightHandlerTestSuite) TestDashboard_CustomRequiresBothDates() {
	w := suite.serve(http.MethodGet, "/insights/dashboard?filter=custom&startDate=2026-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Custom filter requires startDate and endDate", resp.Error)

	suite.mockInsightService.AssertNotCalled(suite.T(), "GetDashboardInsights", mock.Anything, mock.Anything)
}

func (suite *InsightHandlerTestSuite) TestDashboard_CustomRangePassedThrough() {
	suite.mockInsightService.On("GetDashboardInsights", mock.Anything, mock.MatchedBy(func(f domain.DashboardFilter) bool {
		return f.Period == domain.PeriodCustom &&
			f.CustomRange != nil &&
			f.CustomRange.Start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&domain.DashboardInsights{}, nil).Once()

	w := suite.serve(http.MethodGet, "/insights/dashboard?filter=custom&startDate=2026-01-01&endDate=2026-01-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockInsightService.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestMonthlyOverview() {
	overview := &domain.MonthlyOverview{
		Monthly:    map[string]decimal.Decimal{"Jan 2026": decimal.NewFromInt(5300)},
		Categories: map[string]decimal.Decimal{"Rent": decimal.NewFromInt(5000)},
	}

	suite.mockInsightService.On("GetMonthlyOverview", mock.Anything).Return(overview, nil).Once()

	w := suite.serve(http.MethodGet, "/insights", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MonthlyOverviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.True(decimal.NewFromInt(5300).Equal(resp.Data.Monthly["Jan 2026"]))

	suite.mockInsightService.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestSummarize() {
	suite.mockInsightService.On("SummarizeInsights", mock.MatchedBy(func(req dto.SummarizeInsightsRequest) bool {
		return req.Filter == "month"
	})).Return("📊 Financial Insights (month):\n- Income and spending are balanced.\n").Once()

	w := suite.serve(http.MethodPost, "/insights/ai", gin.H{"filter": "month"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SummarizeInsightsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Summary, "Financial Insights (month)")

	suite.mockInsightService.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestPredictCategory() {
	suite.mockCategorySvc.On("PredictCategory", "Electricity Bill Jan").Return("Electricity").Once()

	w := suite.serve(http.MethodPost, "/predict", gin.H{"title": "Electricity Bill Jan"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PredictCategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Electricity", resp.PredictedCategory)

	suite.mockCategorySvc.AssertExpectations(suite.T())
}

func (suite *InsightHandlerTestSuite) TestPredictCategory_MissingTitle() {
	w := suite.serve(http.MethodPost, "/predict", gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Title is required", resp.Error)

	suite.mockCategorySvc.AssertNotCalled(suite.T(), "PredictCategory", mock.Anything)
}

func TestInsightHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InsightHandlerTestSuite))
}
