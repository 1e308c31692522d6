package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database row model for the expenses table.
type Expense struct {
	ExpenseID         string
	Title             string
	Amount            decimal.Decimal
	Type              string
	Category          string
	PredictedCategory string
	PaymentType       string
	TotalInstallments int
	Date              time.Time
	CreatedAt         time.Time
	LastUpdatedAt     time.Time
}

// Installment is the database row model for the installments table.
// Seq preserves recording order within an expense.
type Installment struct {
	InstallmentID string
	ExpenseID     string
	Seq           int
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal
	Note          string
	Date          time.Time
}
