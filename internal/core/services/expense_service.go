package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	portsrepo "github.com/dhanashri-code/expense-tracker/internal/core/ports/repositories"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
	"github.com/dhanashri-code/expense-tracker/internal/middleware"
)

// expenseService provides the expense lifecycle operations.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	categorySvc portssvc.CategorySvcFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, categorySvc portssvc.CategorySvcFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		categorySvc: categorySvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a new expense. The category falls back from explicit
// to predicted to "Other"; totalInstallments is only meaningful for debit
// installment expenses and forced to zero otherwise.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentCash
	}

	totalInstallments := 0
	if paymentType == domain.PaymentInstallment && req.Type == domain.Debit {
		totalInstallments = req.TotalInstallments
	}

	expense := domain.Expense{
		ExpenseID:         uuid.NewString(),
		Title:             req.Title,
		Amount:            req.Amount,
		Type:              req.Type,
		Category:          s.categorySvc.ResolveCategory(req.Category, req.PredictedCategory),
		PredictedCategory: req.PredictedCategory,
		PaymentType:       paymentType,
		TotalInstallments: totalInstallments,
		Date:              date,
		Installments:      []domain.Installment{},
		CreatedAt:         now,
		LastUpdatedAt:     now,
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", "error", err)
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	return &expense, nil
}

// GetExpenseByID retrieves a single expense with its installments.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

// ListExpenses retrieves expenses matching the params, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ListExpensesFilter{}

	if params.Type != "" {
		expType := domain.ExpenseType(params.Type)
		filter.Type = &expType
	}
	if params.Category != "" {
		category := params.Category
		filter.Category = &category
	}
	if params.StartDate != "" && params.EndDate != "" {
		window, err := ParseDateRange(params.StartDate, params.EndDate)
		if err != nil {
			return nil, err
		}
		filter.Range = window
	}

	return s.expenseRepo.ListExpenses(ctx, filter)
}

// UpdateExpense replaces the stored expense document. Installments and the
// creation timestamp survive the replacement; everything else comes from the
// request.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentCash
	}

	totalInstallments := 0
	if paymentType == domain.PaymentInstallment && req.Type == domain.Debit {
		totalInstallments = req.TotalInstallments
	}

	updated := domain.Expense{
		ExpenseID:         existing.ExpenseID,
		Title:             req.Title,
		Amount:            req.Amount,
		Type:              req.Type,
		Category:          req.Category,
		PredictedCategory: req.PredictedCategory,
		PaymentType:       paymentType,
		TotalInstallments: totalInstallments,
		Date:              existing.Date,
		Installments:      existing.Installments,
		CreatedAt:         existing.CreatedAt,
		LastUpdatedAt:     now,
	}
	if req.Date != nil {
		updated.Date = req.Date.UTC()
	}

	if err := s.expenseRepo.UpdateExpense(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}

	return &updated, nil
}

// DeleteExpense hard-deletes an expense; its installments go with it.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.expenseRepo.DeleteExpense(ctx, expenseID)
}

// AddInstallment appends a payment event to a debit expense. The paid amount
// defaults to the nominal amount of the event. Overpayment is accepted; the
// derived remaining balance floors at zero.
func (s *expenseService) AddInstallment(ctx context.Context, expenseID string, req dto.AddInstallmentRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: installment amount must be positive", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Type != domain.Debit {
		return nil, fmt.Errorf("%w: installments allowed only for debit expenses", apperrors.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	installment := domain.Installment{
		InstallmentID: uuid.NewString(),
		Amount:        req.Amount,
		PaidAmount:    req.Amount,
		Note:          req.Note,
		Date:          now,
	}

	if err := s.expenseRepo.AddInstallment(ctx, expenseID, installment); err != nil {
		logger.Error("Failed to add installment", "error", err, "expense_id", expenseID)
		return nil, fmt.Errorf("failed to add installment to expense %s: %w", expenseID, err)
	}

	expense.Installments = append(expense.Installments, installment)
	expense.LastUpdatedAt = now
	return expense, nil
}

// GroupExpensesByTitle buckets all expenses by case-insensitive trimmed
// title, then orders groups by their most recent expense and each group's
// expenses newest first.
func (s *expenseService) GroupExpensesByTitle(ctx context.Context) ([]domain.ExpenseGroup, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ListExpensesFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for grouping: %w", err)
	}

	groups := domain.GroupExpensesByTitle(expenses)

	for i := range groups {
		sort.SliceStable(groups[i].Expenses, func(a, b int) bool {
			return groups[i].Expenses[a].Date.After(groups[i].Expenses[b].Date)
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Expenses[0].Date.After(groups[b].Expenses[0].Date)
	})

	return groups, nil
}
