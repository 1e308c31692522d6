package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
	portsrepo "github.com/dhanashri-code/expense-tracker/internal/core/ports/repositories"
	"github.com/dhanashri-code/expense-tracker/internal/models"
	"github.com/dhanashri-code/expense-tracker/internal/utils/mapping"
)

const expenseColumns = `expense_id, title, amount, type, category, predicted_category, payment_type, total_installments, date, created_at, last_updated_at`

const installmentColumns = `installment_id, expense_id, seq, amount, paid_amount, note, date`

// PgxExpenseRepository persists expenses and their installments.
type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts the expense row and any installments it already
// carries, in a single DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}
	if err := insertInstallments(ctx, tx, expense.ExpenseID, expense.Installments, 0); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindExpenseByID retrieves one expense with its installments in recording
// order. Returns apperrors.ErrNotFound when the ID is unknown.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1`

	var m models.Expense
	err := r.Pool.QueryRow(ctx, query, expenseID).Scan(
		&m.ExpenseID,
		&m.Title,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.PredictedCategory,
		&m.PaymentType,
		&m.TotalInstallments,
		&m.Date,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to query expense %s: %w", expenseID, err)
	}

	expense := mapping.ToDomainExpense(m)

	installments, err := r.findInstallments(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}
	expense.Installments = installments[expenseID]
	if expense.Installments == nil {
		expense.Installments = []domain.Installment{}
	}

	return &expense, nil
}

// ListExpenses retrieves expenses matching the filter, newest first, with
// installments loaded.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + expenseColumns + ` FROM expenses`)

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Range != nil {
		args = append(args, filter.Range.Start)
		conditions = append(conditions, "date >= $"+strconv.Itoa(len(args)))
		args = append(args, filter.Range.End)
		conditions = append(conditions, "date <= $"+strconv.Itoa(len(args)))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY date DESC")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(
			&m.ExpenseID,
			&m.Title,
			&m.Amount,
			&m.Type,
			&m.Category,
			&m.PredictedCategory,
			&m.PaymentType,
			&m.TotalInstallments,
			&m.Date,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
		ids = append(ids, m.ExpenseID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	if len(ids) == 0 {
		return expenses, nil
	}

	installments, err := r.findInstallments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if insts, ok := installments[expenses[i].ExpenseID]; ok {
			expenses[i].Installments = insts
		}
	}

	return expenses, nil
}

// UpdateExpense replaces the stored document: the expense row is rewritten
// and the installment rows are re-inserted from the given expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET title = $2, amount = $3, type = $4, category = $5, predicted_category = $6,
			payment_type = $7, total_installments = $8, date = $9, last_updated_at = $10
		WHERE expense_id = $1
	`
	tag, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.Title,
		m.Amount,
		m.Type,
		m.Category,
		m.PredictedCategory,
		m.PaymentType,
		m.TotalInstallments,
		m.Date,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, m.ExpenseID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE expense_id = $1`, m.ExpenseID); err != nil {
		return fmt.Errorf("failed to clear installments for expense %s: %w", m.ExpenseID, err)
	}
	if err := insertInstallments(ctx, tx, m.ExpenseID, expense.Installments, 0); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteExpense hard-deletes an expense; the installments FK cascades.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

// AddInstallment appends a payment event after the expense's current last
// sequence number and bumps the expense's update timestamp.
func (r *PgxExpenseRepository) AddInstallment(ctx context.Context, expenseID string, installment domain.Installment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `UPDATE expenses SET last_updated_at = $2 WHERE expense_id = $1`, expenseID, installment.Date)
	if err != nil {
		return fmt.Errorf("failed to touch expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}

	query := `
		INSERT INTO installments (` + installmentColumns + `)
		SELECT $1, $2, COALESCE(MAX(seq), 0) + 1, $3, $4, $5, $6
		FROM installments WHERE expense_id = $2
	`
	_, err = tx.Exec(ctx, query,
		installment.InstallmentID,
		expenseID,
		installment.Amount,
		installment.PaidAmount,
		installment.Note,
		installment.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert installment for expense %s: %w", expenseID, err)
	}

	return r.Commit(ctx, tx)
}

// findInstallments loads installments for the given expense IDs, grouped by
// owner, ordered by recording sequence.
func (r *PgxExpenseRepository) findInstallments(ctx context.Context, expenseIDs []string) (map[string][]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE expense_id = ANY($1) ORDER BY expense_id, seq`

	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Installment)
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(
			&m.InstallmentID,
			&m.ExpenseID,
			&m.Seq,
			&m.Amount,
			&m.PaidAmount,
			&m.Note,
			&m.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		result[m.ExpenseID] = append(result[m.ExpenseID], mapping.ToDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate installment rows: %w", err)
	}

	return result, nil
}

func insertExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.Title,
		m.Amount,
		m.Type,
		m.Category,
		m.PredictedCategory,
		m.PaymentType,
		m.TotalInstallments,
		m.Date,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func insertInstallments(ctx context.Context, tx pgx.Tx, expenseID string, installments []domain.Installment, seqOffset int) error {
	if len(installments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, inst := range installments {
		m := mapping.ToModelInstallment(inst, expenseID, seqOffset+i+1)
		batch.Queue(query,
			m.InstallmentID,
			m.ExpenseID,
			m.Seq,
			m.Amount,
			m.PaidAmount,
			m.Note,
			m.Date,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert installments for expense %s: %w", expenseID, err)
	}
	return nil
}
