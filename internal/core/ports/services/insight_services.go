package services

import (
	"context"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
)

// InsightSvcFacade defines the aggregation operations behind the dashboard
// and insight endpoints.
type InsightSvcFacade interface {
	// GetDashboardInsights aggregates expenses within the resolved filter
	// window: typed totals and counts, the per-period amount series, and
	// breakdowns by payment type, category, and payable title.
	GetDashboardInsights(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardInsights, error)

	// GetMonthlyOverview computes the legacy month-label and category totals
	// over all expenses.
	GetMonthlyOverview(ctx context.Context) (*domain.MonthlyOverview, error)

	// SummarizeInsights assembles a deterministic natural-language summary
	// from an aggregation result. Pure rule-based text, no model calls.
	SummarizeInsights(req dto.SummarizeInsightsRequest) string
}
