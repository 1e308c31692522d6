package dto

import "github.com/shopspring/decimal"

// AddInstallmentRequest defines the payload for recording a payment event
// against an expense. Amount is the amount paid now; the service rejects
// non-positive values.
type AddInstallmentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}
