package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies the aggregation window a dashboard query is scoped to.
type Period string

const (
	PeriodAll    Period = "all"
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DashboardFilter is the explicit filter specification for dashboard
// aggregation. CustomRange is only consulted when Period is PeriodCustom.
type DashboardFilter struct {
	Period      Period
	CustomRange *DateRange
}

// SeriesPoint is one bucket of the per-period amount series. For a month
// window the bucket is the week-of-month (ceil(dayOfMonth/7)); for every
// other window it is the raw transaction date.
type SeriesPoint struct {
	Bucket string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// BreakdownEntry is one named slice of a grouped sum (payment type,
// category, payable title).
type BreakdownEntry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardInsights is the full aggregation result for one filter window.
type DashboardInsights struct {
	TotalAmount decimal.Decimal
	TotalCredit decimal.Decimal
	TotalDebit  decimal.Decimal
	CountCredit int
	CountDebit  int
	Series      []SeriesPoint
	Payments    []BreakdownEntry
	Categories  []BreakdownEntry
	Payables    []BreakdownEntry
}

// MonthlyOverview is the legacy insight shape: totals keyed by month label
// ("Jan 2006") and by category.
type MonthlyOverview struct {
	Monthly    map[string]decimal.Decimal `json:"monthly"`
	Categories map[string]decimal.Decimal `json:"categories"`
}
