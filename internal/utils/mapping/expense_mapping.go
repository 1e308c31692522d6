package mapping

import (
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/dhanashri-code/expense-tracker/internal/models"
)

// ToModelExpense converts a domain expense to its database row model.
// Installments map separately; derived fields are never persisted.
func ToModelExpense(exp domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:         exp.ExpenseID,
		Title:             exp.Title,
		Amount:            exp.Amount,
		Type:              string(exp.Type),
		Category:          exp.Category,
		PredictedCategory: exp.PredictedCategory,
		PaymentType:       string(exp.PaymentType),
		TotalInstallments: exp.TotalInstallments,
		Date:              exp.Date,
		CreatedAt:         exp.CreatedAt,
		LastUpdatedAt:     exp.LastUpdatedAt,
	}
}

// ToDomainExpense converts a database row model back to the domain type.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:         m.ExpenseID,
		Title:             m.Title,
		Amount:            m.Amount,
		Type:              domain.ExpenseType(m.Type),
		Category:          m.Category,
		PredictedCategory: m.PredictedCategory,
		PaymentType:       domain.PaymentType(m.PaymentType),
		TotalInstallments: m.TotalInstallments,
		Date:              m.Date,
		Installments:      []domain.Installment{},
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToModelInstallment converts a domain installment owned by expenseID at
// position seq.
func ToModelInstallment(inst domain.Installment, expenseID string, seq int) models.Installment {
	return models.Installment{
		InstallmentID: inst.InstallmentID,
		ExpenseID:     expenseID,
		Seq:           seq,
		Amount:        inst.Amount,
		PaidAmount:    inst.PaidAmount,
		Note:          inst.Note,
		Date:          inst.Date,
	}
}

// ToDomainInstallment converts an installment row model to the domain type.
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		Note:          m.Note,
		Date:          m.Date,
	}
}
