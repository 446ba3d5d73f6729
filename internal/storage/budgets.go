package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"budgetbook/internal/core"
)

const createBudget = `
INSERT INTO budgets (category_id, month, year, target_cents)
VALUES (?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row := q.db.QueryRowContext(ctx, createBudget, b.CategoryID, b.Period.Month, b.Period.Year, b.Target.Cents)
	if err := row.Scan(&b.ID); err != nil {
		if isUniqueViolation(err) {
			return core.Budget{}, core.Conflictf("a budget for this category already exists for %d/%d", b.Period.Month, b.Period.Year)
		}
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

const getBudget = `
SELECT id, category_id, month, year, target_cents
FROM budgets
WHERE id = ?`

func (q *Queries) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	var b core.Budget
	err := q.db.QueryRowContext(ctx, getBudget, id).
		Scan(&b.ID, &b.CategoryID, &b.Period.Month, &b.Period.Year, &b.Target.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, &core.NotFoundError{Entity: "budget", ID: id}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

const listBudgetsByPeriod = `
SELECT b.id, b.category_id, b.month, b.year, b.target_cents, c.name
FROM budgets b
JOIN categories c ON c.id = b.category_id
WHERE b.month = ? AND b.year = ?
ORDER BY c.name`

// BudgetRow is a budget joined with its category name, as needed for
// evaluation. The join also drops any budget whose category no longer
// exists, though foreign keys should prevent that state.
type BudgetRow struct {
	Budget       core.Budget
	CategoryName string
}

func (q *Queries) ListBudgetsByPeriod(ctx context.Context, p core.Period) ([]BudgetRow, error) {
	rows, err := q.db.QueryContext(ctx, listBudgetsByPeriod, p.Month, p.Year)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []BudgetRow
	for rows.Next() {
		var r BudgetRow
		if err := rows.Scan(&r.Budget.ID, &r.Budget.CategoryID, &r.Budget.Period.Month,
			&r.Budget.Period.Year, &r.Budget.Target.Cents, &r.CategoryName); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, r)
	}
	return budgets, rows.Err()
}

const updateBudgetTarget = `
UPDATE budgets
SET target_cents = ?
WHERE id = ?`

func (q *Queries) UpdateBudgetTarget(ctx context.Context, id int64, target core.Money) error {
	res, err := q.db.ExecContext(ctx, updateBudgetTarget, target.Cents, id)
	if err != nil {
		return fmt.Errorf("update budget target: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update budget target: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "budget", ID: id}
	}
	return nil
}

const deleteBudget = `
DELETE FROM budgets
WHERE id = ?`

func (q *Queries) DeleteBudget(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteBudget, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "budget", ID: id}
	}
	return nil
}
