package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	portsrepo "github.com/dhanashri-code/expense-tracker/internal/core/ports/repositories"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
)

const (
	unknownPayment       = "Unknown"
	unspecifiedCategory  = "Not Specified"
	defaultSummaryWindow = "All Time"
)

// InsightServiceOption customizes an insight service.
type InsightServiceOption func(*insightService)

// WithClock overrides the time source used for window resolution.
func WithClock(clock func() time.Time) InsightServiceOption {
	return func(s *insightService) {
		s.clock = clock
	}
}

// insightService computes dashboard aggregations. The aggregation itself is
// a pure function of the fetched expenses and the filter; the service only
// resolves the window and talks to the repository.
type insightService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	clock       func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(expenseRepo portsrepo.ExpenseRepositoryFacade, opts ...InsightServiceOption) portssvc.InsightSvcFacade {
	s := &insightService{
		expenseRepo: expenseRepo,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.InsightSvcFacade = (*insightService)(nil)

// GetDashboardInsights resolves the filter window, fetches the expenses that
// fall inside it and aggregates them.
func (s *insightService) GetDashboardInsights(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardInsights, error) {
	window := resolveWindow(filter, s.clock().UTC())

	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ListExpensesFilter{Range: window})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for insights: %w", err)
	}

	insights := aggregateDashboard(expenses, filter.Period)
	return &insights, nil
}

// GetMonthlyOverview computes the legacy month-label and category totals
// over the full expense history.
func (s *insightService) GetMonthlyOverview(ctx context.Context) (*domain.MonthlyOverview, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ListExpensesFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for overview: %w", err)
	}

	overview := domain.MonthlyOverview{
		Monthly:    make(map[string]decimal.Decimal),
		Categories: make(map[string]decimal.Decimal),
	}
	for _, exp := range expenses {
		month := exp.Date.UTC().Format("Jan 2006")
		overview.Monthly[month] = overview.Monthly[month].Add(exp.Amount)

		category := exp.Category
		if category == "" {
			category = unspecifiedCategory
		}
		overview.Categories[category] = overview.Categories[category].Add(exp.Amount)
	}

	return &overview, nil
}

// SummarizeInsights assembles the rule-based summary text from an
// aggregation result. Deterministic for a fixed input.
func (s *insightService) SummarizeInsights(req dto.SummarizeInsightsRequest) string {
	window := req.Filter
	if window == "" {
		window = defaultSummaryWindow
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Financial Insights (%s):\n", window)

	switch {
	case req.TotalDebit.GreaterThan(req.TotalCredit):
		fmt.Fprintf(&b, "- Spending (₹%s) is higher than income (₹%s). Try to save more.\n", req.TotalDebit, req.TotalCredit)
	case req.TotalCredit.GreaterThan(req.TotalDebit):
		fmt.Fprintf(&b, "- Income (₹%s) exceeds spending (₹%s). Good job!\n", req.TotalCredit, req.TotalDebit)
	default:
		b.WriteString("- Income and spending are balanced.\n")
	}

	if len(req.MonthlyData) > 0 {
		peak := req.MonthlyData[0]
		for _, point := range req.MonthlyData[1:] {
			if point.Amount.GreaterThanOrEqual(peak.Amount) {
				peak = point
			}
		}
		fmt.Fprintf(&b, "- Highest spending in %s (₹%s).\n", peak.Bucket, peak.Amount)
	}

	if top, ok := topNameValue(req.CategoryData); ok {
		fmt.Fprintf(&b, "- Most spent on '%s' (₹%s).\n", top.Name, top.Value)
	}
	if top, ok := topNameValue(req.PaymentData); ok {
		fmt.Fprintf(&b, "- Most payments done via %s (₹%s).\n", top.Name, top.Value)
	}
	if len(req.PayableData) > 0 {
		top := req.PayableData[0]
		for _, bill := range req.PayableData[1:] {
			if bill.Amount.GreaterThanOrEqual(top.Amount) {
				top = bill
			}
		}
		fmt.Fprintf(&b, "- Biggest pending bill: '%s' (₹%s).\n", top.Name, top.Amount)
	}

	return b.String()
}

func topNameValue(entries []dto.NameValueResponse) (dto.NameValueResponse, bool) {
	if len(entries) == 0 {
		return dto.NameValueResponse{}, false
	}
	top := entries[0]
	for _, e := range entries[1:] {
		if e.Value.GreaterThanOrEqual(top.Value) {
			top = e
		}
	}
	return top, true
}

// resolveWindow turns a filter into an inclusive date range. A nil result
// means no date filter. Unrecognized periods degrade to "all"; strictness,
// when configured, is enforced at the API boundary so this stays total.
func resolveWindow(filter domain.DashboardFilter, now time.Time) *domain.DateRange {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter.Period {
	case domain.PeriodDay:
		return &domain.DateRange{
			Start: startOfDay,
			End:   startOfDay.Add(24*time.Hour - time.Nanosecond),
		}
	case domain.PeriodWeek:
		// Calendar weeks start on Sunday.
		start := startOfDay.AddDate(0, 0, -int(now.Weekday()))
		return &domain.DateRange{
			Start: start,
			End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
		}
	case domain.PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &domain.DateRange{
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		}
	case domain.PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return &domain.DateRange{
			Start: start,
			End:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
		}
	case domain.PeriodCustom:
		return filter.CustomRange
	default:
		return nil
	}
}

// aggregateDashboard is the pure aggregation over a filtered expense set.
// For a fixed input the output is fully deterministic: every grouped series
// is ordered by ascending bucket key.
func aggregateDashboard(expenses []domain.Expense, period domain.Period) domain.DashboardInsights {
	insights := domain.DashboardInsights{
		TotalAmount: decimal.Zero,
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
	}

	seriesSums := make(map[string]decimal.Decimal)
	paymentSums := make(map[string]decimal.Decimal)
	categorySums := make(map[string]decimal.Decimal)
	payableSums := make(map[string]decimal.Decimal)

	for _, exp := range expenses {
		insights.TotalAmount = insights.TotalAmount.Add(exp.Amount)
		switch exp.Type {
		case domain.Credit:
			insights.TotalCredit = insights.TotalCredit.Add(exp.Amount)
			insights.CountCredit++
		case domain.Debit:
			insights.TotalDebit = insights.TotalDebit.Add(exp.Amount)
			insights.CountDebit++
		}

		bucket := seriesBucket(exp.Date, period)
		seriesSums[bucket] = seriesSums[bucket].Add(exp.Amount)

		payment := string(exp.PaymentType)
		if payment == "" {
			payment = unknownPayment
		}
		paymentSums[payment] = paymentSums[payment].Add(exp.Amount)

		category := exp.Category
		if category == "" {
			category = unspecifiedCategory
		}
		categorySums[category] = categorySums[category].Add(exp.Amount)

		if exp.Type == domain.Debit {
			payableSums[exp.Title] = payableSums[exp.Title].Add(exp.Amount)
		}
	}

	insights.Series = sortedSeries(seriesSums)
	insights.Payments = sortedBreakdown(paymentSums)
	insights.Categories = sortedBreakdown(categorySums)
	insights.Payables = sortedBreakdown(payableSums)
	return insights
}

// seriesBucket picks the chart bucket for an expense date. A month window
// buckets by week-of-month (ceil(dayOfMonth/7)); everything else buckets by
// the raw date value, second precision, which keeps lexical and
// chronological order identical.
func seriesBucket(date time.Time, period domain.Period) string {
	if period == domain.PeriodMonth {
		return strconv.Itoa((date.Day() + 6) / 7)
	}
	return date.UTC().Format(time.RFC3339)
}

func sortedSeries(sums map[string]decimal.Decimal) []domain.SeriesPoint {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]domain.SeriesPoint, len(keys))
	for i, k := range keys {
		series[i] = domain.SeriesPoint{Bucket: k, Amount: sums[k]}
	}
	return series
}

func sortedBreakdown(sums map[string]decimal.Decimal) []domain.BreakdownEntry {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]domain.BreakdownEntry, len(keys))
	for i, k := range keys {
		entries[i] = domain.BreakdownEntry{Name: k, Value: sums[k]}
	}
	return entries
}
