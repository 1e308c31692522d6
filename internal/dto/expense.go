package dto

import (
	"time"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a new expense.
// Amount positivity is validated in the service (decimal fields don't take
// numeric binding tags).
type CreateExpenseRequest struct {
	Title             string             `json:"title" binding:"required"`
	Amount            decimal.Decimal    `json:"amount" binding:"required"`
	Type              domain.ExpenseType `json:"type" binding:"required,oneof=debit credit"`
	PaymentType       domain.PaymentType `json:"paymentType" binding:"omitempty,oneof=cash online installment"`
	TotalInstallments int                `json:"totalInstallments" binding:"omitempty,gte=0"`
	Category          string             `json:"category"`
	PredictedCategory string             `json:"predictedCategory"`
	Date              *time.Time         `json:"date"` // defaults to now when omitted
}

// UpdateExpenseRequest carries a full replacement document for an expense.
// Fields mirror CreateExpenseRequest; anything omitted falls back to its
// zero/default, matching full-replace semantics.
type UpdateExpenseRequest struct {
	Title             string             `json:"title" binding:"required"`
	Amount            decimal.Decimal    `json:"amount" binding:"required"`
	Type              domain.ExpenseType `json:"type" binding:"required,oneof=debit credit"`
	PaymentType       domain.PaymentType `json:"paymentType" binding:"omitempty,oneof=cash online installment"`
	TotalInstallments int                `json:"totalInstallments" binding:"omitempty,gte=0"`
	Category          string             `json:"category"`
	PredictedCategory string             `json:"predictedCategory"`
	Date              *time.Time         `json:"date"`
}

// ListExpensesParams defines query parameters for listing expenses.
// Dates accept RFC3339 or plain YYYY-MM-DD strings.
type ListExpensesParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=debit credit"`
	Category  string `form:"category"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// InstallmentResponse defines the data returned for a single installment.
type InstallmentResponse struct {
	InstallmentID string          `json:"installmentID"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Note          string          `json:"note,omitempty"`
	Date          time.Time       `json:"date"`
}

// ExpenseResponse defines the data returned for an expense, including the
// derived payment fields which are recomputed on every read.
type ExpenseResponse struct {
	ExpenseID         string                `json:"id"`
	Title             string                `json:"title"`
	Amount            decimal.Decimal       `json:"amount"`
	Type              domain.ExpenseType    `json:"type"`
	Category          string                `json:"category"`
	PredictedCategory string                `json:"predictedCategory,omitempty"`
	PaymentType       domain.PaymentType    `json:"paymentType"`
	TotalInstallments int                   `json:"totalInstallments"`
	Date              time.Time             `json:"date"`
	Installments      []InstallmentResponse `json:"installments"`
	TotalPaid         decimal.Decimal       `json:"totalPaid"`
	Remaining         decimal.Decimal       `json:"remaining"`
	Status            domain.PaymentStatus  `json:"status"`
	CreatedAt         time.Time             `json:"createdAt"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
}

// ExpenseGroupResponse is one grouped-by-title bucket of expenses.
type ExpenseGroupResponse struct {
	Title        string            `json:"title"`
	Transactions []ExpenseResponse `json:"transactions"`
}

// DeleteExpenseResponse confirms a hard delete.
type DeleteExpenseResponse struct {
	Message string `json:"message"`
}

// ToInstallmentResponse converts a domain.Installment to its DTO.
func ToInstallmentResponse(inst *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		Amount:        inst.Amount,
		PaidAmount:    inst.PaidAmount,
		Note:          inst.Note,
		Date:          inst.Date,
	}
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO,
// computing the derived payment fields.
func ToExpenseResponse(exp *domain.Expense) ExpenseResponse {
	installments := make([]InstallmentResponse, len(exp.Installments))
	for i, inst := range exp.Installments {
		installments[i] = ToInstallmentResponse(&inst)
	}
	return ExpenseResponse{
		ExpenseID:         exp.ExpenseID,
		Title:             exp.Title,
		Amount:            exp.Amount,
		Type:              exp.Type,
		Category:          exp.Category,
		PredictedCategory: exp.PredictedCategory,
		PaymentType:       exp.PaymentType,
		TotalInstallments: exp.TotalInstallments,
		Date:              exp.Date,
		Installments:      installments,
		TotalPaid:         exp.TotalPaid(),
		Remaining:         exp.Remaining(),
		Status:            exp.Status(),
		CreatedAt:         exp.CreatedAt,
		LastUpdatedAt:     exp.LastUpdatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to response DTOs.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		responses[i] = ToExpenseResponse(&exp)
	}
	return responses
}

// ToExpenseGroupResponses converts grouped domain expenses to response DTOs.
func ToExpenseGroupResponses(groups []domain.ExpenseGroup) []ExpenseGroupResponse {
	responses := make([]ExpenseGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ExpenseGroupResponse{
			Title:        g.Title,
			Transactions: ToExpenseResponses(g.Expenses),
		}
	}
	return responses
}
