package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType indicates whether an expense is money paid out or money received.
type ExpenseType string

const (
	Debit  ExpenseType = "debit"
	Credit ExpenseType = "credit"
)

// PaymentType indicates how an expense was (or is being) paid.
type PaymentType string

const (
	PaymentCash        PaymentType = "cash"
	PaymentOnline      PaymentType = "online"
	PaymentInstallment PaymentType = "installment"
)

// PaymentStatus is the derived payment-completion state of an expense.
type PaymentStatus string

const (
	StatusCleared PaymentStatus = "Cleared"
	StatusPending PaymentStatus = "Pending"
)

// Installment is a single payment event recorded against an expense.
// Installments are owned by exactly one expense and have no independent
// lifecycle; their order is the order in which they were recorded.
type Installment struct {
	InstallmentID string          `json:"installmentID"`
	Amount        decimal.Decimal `json:"amount"`     // nominal size of the installment
	PaidAmount    decimal.Decimal `json:"paidAmount"` // amount actually paid; defaults to Amount
	Note          string          `json:"note"`
	Date          time.Time       `json:"date"`
}

// Expense represents a single recorded debit or credit transaction.
type Expense struct {
	ExpenseID         string          `json:"expenseID"` // Primary key (UUID)
	Title             string          `json:"title"`
	Amount            decimal.Decimal `json:"amount"` // face value, positive
	Type              ExpenseType     `json:"type"`
	Category          string          `json:"category"`
	PredictedCategory string          `json:"predictedCategory"` // stored for audit, not authoritative
	PaymentType       PaymentType     `json:"paymentType"`
	TotalInstallments int             `json:"totalInstallments"` // advisory metadata only
	Date              time.Time       `json:"date"`
	Installments      []Installment   `json:"installments"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// TotalPaid sums the paid amounts of all recorded installments.
func (e *Expense) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range e.Installments {
		total = total.Add(inst.PaidAmount)
	}
	return total
}

// Remaining is the outstanding balance against the expense's face value.
// It never goes negative, regardless of overpayment.
func (e *Expense) Remaining() decimal.Decimal {
	remaining := e.Amount.Sub(e.TotalPaid())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Status derives the payment-completion state. Cash and online expenses are
// always Cleared; installment expenses are Cleared once the recorded payments
// cover the face value. Never persisted, always recomputed, so stored
// snapshots cannot go stale.
func (e *Expense) Status() PaymentStatus {
	if e.PaymentType == PaymentCash || e.PaymentType == PaymentOnline {
		return StatusCleared
	}
	if e.Remaining().LessThanOrEqual(decimal.Zero) {
		return StatusCleared
	}
	return StatusPending
}
