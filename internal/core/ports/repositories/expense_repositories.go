package repositories

import (
	"context"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
)

// ListExpensesFilter narrows an expense listing. Nil fields apply no filter.
type ListExpensesFilter struct {
	Type     *domain.ExpenseType
	Category *string
	Range    *domain.DateRange
}

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense, with its installments, by ID.
	// Returns apperrors.ErrNotFound when no such expense exists.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter, newest first,
	// each with its installments loaded.
	ListExpenses(ctx context.Context, filter ListExpensesFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a newly created expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense replaces the stored expense document (full-replace
	// semantics, installment rows included).
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense hard-deletes an expense and cascades to its installments.
	// Returns apperrors.ErrNotFound when no such expense exists.
	DeleteExpense(ctx context.Context, expenseID string) error

	// AddInstallment appends a payment event to an existing expense.
	AddInstallment(ctx context.Context, expenseID string, installment domain.Installment) error
}

// ExpenseRepositoryFacade combines all expense repository capabilities.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
