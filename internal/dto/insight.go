package dto

import (
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardParams defines query parameters for the dashboard aggregation.
// An empty filter means "all". startDate/endDate are only consulted for the
// custom filter and accept RFC3339 or plain YYYY-MM-DD strings.
type DashboardParams struct {
	Filter    string `form:"filter,default=all"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// SeriesPointResponse is one bucket of the dashboard amount series. The
// json key is "month" for compatibility with the dashboard charts even
// though the bucket is a week-of-month or raw date for most filters.
type SeriesPointResponse struct {
	Bucket string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// NameValueResponse is a named slice of a grouped sum.
type NameValueResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// NameAmountResponse is a named slice of a grouped sum for payables, which
// historically serialize the sum under "amount" rather than "value".
type NameAmountResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardResponse is the aggregation result served to the dashboard.
type DashboardResponse struct {
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	CountCredit  int                   `json:"countCredit"`
	CountDebit   int                   `json:"countDebit"`
	MonthlyData  []SeriesPointResponse `json:"monthlyData"`
	PaymentData  []NameValueResponse   `json:"paymentData"`
	CategoryData []NameValueResponse   `json:"categoryData"`
	PayableData  []NameAmountResponse  `json:"payableData"`
}

// SummarizeInsightsRequest is the dashboard aggregation result echoed back
// by the client together with its filter label, to be turned into a
// natural-language summary.
type SummarizeInsightsRequest struct {
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	MonthlyData  []SeriesPointResponse `json:"monthlyData"`
	PaymentData  []NameValueResponse   `json:"paymentData"`
	CategoryData []NameValueResponse   `json:"categoryData"`
	PayableData  []NameAmountResponse  `json:"payableData"`
	Filter       string                `json:"filter"`
}

// SummarizeInsightsResponse wraps the generated summary text.
type SummarizeInsightsResponse struct {
	Summary string `json:"summary"`
}

// MonthlyOverviewResponse is the legacy insights envelope.
type MonthlyOverviewResponse struct {
	Success bool                   `json:"success"`
	Data    domain.MonthlyOverview `json:"data"`
}

// ToDashboardResponse converts domain insights to the dashboard DTO.
func ToDashboardResponse(ins *domain.DashboardInsights) DashboardResponse {
	series := make([]SeriesPointResponse, len(ins.Series))
	for i, p := range ins.Series {
		series[i] = SeriesPointResponse{Bucket: p.Bucket, Amount: p.Amount}
	}
	payments := make([]NameValueResponse, len(ins.Payments))
	for i, e := range ins.Payments {
		payments[i] = NameValueResponse{Name: e.Name, Value: e.Value}
	}
	categories := make([]NameValueResponse, len(ins.Categories))
	for i, e := range ins.Categories {
		categories[i] = NameValueResponse{Name: e.Name, Value: e.Value}
	}
	payables := make([]NameAmountResponse, len(ins.Payables))
	for i, e := range ins.Payables {
		payables[i] = NameAmountResponse{Name: e.Name, Amount: e.Value}
	}
	return DashboardResponse{
		TotalAmount:  ins.TotalAmount,
		TotalCredit:  ins.TotalCredit,
		TotalDebit:   ins.TotalDebit,
		CountCredit:  ins.CountCredit,
		CountDebit:   ins.CountDebit,
		MonthlyData:  series,
		PaymentData:  payments,
		CategoryData: categories,
		PayableData:  payables,
	}
}
