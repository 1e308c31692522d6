package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/core/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
	"github.com/dhanashri-code/expense-tracker/internal/middleware"
	"github.com/dhanashri-code/expense-tracker/internal/platform/config"
)

// insightHandler handles dashboard aggregation and summary requests.
type insightHandler struct {
	insightService portssvc.InsightSvcFacade
	strictFilter   bool
}

func newInsightHandler(insightService portssvc.InsightSvcFacade, strictFilter bool) *insightHandler {
	return &insightHandler{
		insightService: insightService,
		strictFilter:   strictFilter,
	}
}

var knownPeriods = map[domain.Period]bool{
	domain.PeriodAll:    true,
	domain.PeriodDay:    true,
	domain.PeriodWeek:   true,
	domain.PeriodMonth:  true,
	domain.PeriodYear:   true,
	domain.PeriodCustom: true,
}

// dashboard godoc
// @Summary Dashboard aggregation
// @Description Aggregates expenses inside the filter window: typed totals and counts, the per-period series, and payment/category/payable breakdowns.
// @Tags insights
// @Produce json
// @Param filter query string false "all, day, week, month, year or custom" default(all)
// @Param startDate query string false "Custom range start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Custom range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/dashboard [get]
func (h *insightHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	period := domain.Period(params.Filter)
	if !knownPeriods[period] {
		if h.strictFilter {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown filter value: " + params.Filter})
			return
		}
		// Lenient mode: unrecognized filters degrade to "all".
		logger.Warn("Unknown dashboard filter, falling back to all", slog.String("filter", params.Filter))
		period = domain.PeriodAll
	}

	filter := domain.DashboardFilter{Period: period}
	if period == domain.PeriodCustom {
		if params.StartDate == "" || params.EndDate == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Custom filter requires startDate and endDate"})
			return
		}
		window, err := services.ParseDateRange(params.StartDate, params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.CustomRange = window
	}

	insights, err := h.insightService.GetDashboardInsights(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute dashboard insights", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch insights"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(insights))
}

// monthlyOverview godoc
// @Summary Legacy insights
// @Description Amount totals keyed by month label and by category over the full history.
// @Tags insights
// @Produce json
// @Success 200 {object} dto.MonthlyOverviewResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights [get]
func (h *insightHandler) monthlyOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.insightService.GetMonthlyOverview(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute monthly overview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating insights"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyOverviewResponse{Success: true, Data: *overview})
}

// summarize godoc
// @Summary Rule-based insight summary
// @Description Turns a dashboard aggregation result into deterministic natural-language text. No model calls involved.
// @Tags insights
// @Accept json
// @Produce json
// @Param insights body dto.SummarizeInsightsRequest true "Aggregation result plus filter label"
// @Success 200 {object} dto.SummarizeInsightsResponse
// @Failure 400 {object} ErrorResponse
// @Router /insights/ai [post]
func (h *insightHandler) summarize(c *gin.Context) {
	var req dto.SummarizeInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	summary := h.insightService.SummarizeInsights(req)
	c.JSON(http.StatusOK, dto.SummarizeInsightsResponse{Summary: summary})
}

// registerInsightRoutes registers insight specific routes.
func registerInsightRoutes(group *gin.RouterGroup, cfg *config.Config, insightService portssvc.InsightSvcFacade) {
	h := newInsightHandler(insightService, cfg.StrictFilter)

	insights := group.Group("/insights")
	{
		insights.GET("", h.monthlyOverview)
		insights.GET("/dashboard", h.dashboard)
		insights.POST("/ai", h.summarize)
	}
}
