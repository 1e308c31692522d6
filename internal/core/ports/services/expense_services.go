package services

import (
	"context"

	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
)

// ExpenseSvcFacade defines the expense lifecycle operations, installment
// recording included (installments have no lifecycle of their own).
type ExpenseSvcFacade interface {
	// CreateExpense records a new expense, resolving its category through
	// the explicit -> predicted -> "Other" fallback chain.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// GetExpenseByID retrieves a single expense with its installments.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the params, newest first.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)

	// UpdateExpense replaces an expense document in full.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense hard-deletes an expense and its installments.
	DeleteExpense(ctx context.Context, expenseID string) error

	// AddInstallment appends a payment event to a debit expense and returns
	// the expense with its derived fields recomputed.
	AddInstallment(ctx context.Context, expenseID string, req dto.AddInstallmentRequest) (*domain.Expense, error)

	// GroupExpensesByTitle buckets all expenses case-insensitively by title,
	// groups and their members ordered most-recent first.
	GroupExpensesByTitle(ctx context.Context) ([]domain.ExpenseGroup, error)
}
