package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"budgetbook/internal/core"
)

const createTransaction = `
INSERT INTO transactions (date, account_id, category_id, payee, amount_cents, note, planned)
VALUES (?, ?, ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?)
RETURNING id`

func (q *Queries) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		t.Date.String(), t.AccountID, t.CategoryID, t.Payee, t.Amount.Cents, t.Note, t.Planned)
	if err := row.Scan(&t.ID); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

const getTransaction = `
SELECT id, date, account_id, category_id, COALESCE(payee, ''), amount_cents, COALESCE(note, ''), planned
FROM transactions
WHERE id = ?`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	t, err := scanTransaction(q.db.QueryRowContext(ctx, getTransaction, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, &core.NotFoundError{Entity: "transaction", ID: id}
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

const listTransactions = `
SELECT id, date, account_id, category_id, COALESCE(payee, ''), amount_cents, COALESCE(note, ''), planned
FROM transactions
ORDER BY date DESC, id DESC`

func (q *Queries) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return q.queryTransactions(ctx, listTransactions)
}

const listTransactionsInRange = `
SELECT id, date, account_id, category_id, COALESCE(payee, ''), amount_cents, COALESCE(note, ''), planned
FROM transactions
WHERE date >= ? AND date < ?
ORDER BY date DESC, id DESC`

// ListTransactionsInRange returns transactions with start <= date < end.
// Dates are stored as ISO text, so lexicographic comparison is date order.
func (q *Queries) ListTransactionsInRange(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	return q.queryTransactions(ctx, listTransactionsInRange, start.String(), end.String())
}

func (q *Queries) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var date string
	if err := row.Scan(&t.ID, &date, &t.AccountID, &t.CategoryID, &t.Payee, &t.Amount.Cents, &t.Note, &t.Planned); err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = d
	return t, nil
}

const updateTransaction = `
UPDATE transactions
SET date = ?, account_id = ?, category_id = ?, payee = NULLIF(?, ''), amount_cents = ?, note = NULLIF(?, ''), planned = ?
WHERE id = ?`

func (q *Queries) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		t.Date.String(), t.AccountID, t.CategoryID, t.Payee, t.Amount.Cents, t.Note, t.Planned, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "transaction", ID: t.ID}
	}
	return nil
}

const deleteTransaction = `
DELETE FROM transactions
WHERE id = ?`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "transaction", ID: id}
	}
	return nil
}

const countTransactionsByAccount = `
SELECT COUNT(*)
FROM transactions
WHERE account_id = ?`

func (q *Queries) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, countTransactionsByAccount, accountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions by account: %w", err)
	}
	return n, nil
}

const countTransactionsByCategory = `
SELECT COUNT(*)
FROM transactions
WHERE category_id = ?`

func (q *Queries) CountTransactionsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, countTransactionsByCategory, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions by category: %w", err)
	}
	return n, nil
}

const sumCategorySpend = `
SELECT COALESCE(SUM(amount_cents), 0)
FROM transactions
WHERE category_id = ? AND planned = 0 AND date >= ? AND date < ?`

// SumCategorySpend totals posted transaction amounts for one category inside
// the half-open date range. Planned transactions never count.
func (q *Queries) SumCategorySpend(ctx context.Context, categoryID int64, start, end core.Date) (core.Money, error) {
	var cents int64
	err := q.db.QueryRowContext(ctx, sumCategorySpend, categoryID, start.String(), end.String()).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum category spend: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

const sumPostedInRange = `
SELECT COALESCE(SUM(amount_cents), 0)
FROM transactions
WHERE planned = 0 AND date >= ? AND date < ?`

// SumPostedInRange totals posted amounts across all categories as recorded,
// without applying category sign.
func (q *Queries) SumPostedInRange(ctx context.Context, start, end core.Date) (core.Money, error) {
	var cents int64
	err := q.db.QueryRowContext(ctx, sumPostedInRange, start.String(), end.String()).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum posted in range: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

const sumPlanned = `
SELECT COALESCE(SUM(amount_cents), 0)
FROM transactions
WHERE planned = 1`

// SumPlanned totals every planned transaction regardless of date.
func (q *Queries) SumPlanned(ctx context.Context) (core.Money, error) {
	var cents int64
	if err := q.db.QueryRowContext(ctx, sumPlanned).Scan(&cents); err != nil {
		return core.Money{}, fmt.Errorf("sum planned: %w", err)
	}
	return core.Money{Cents: cents}, nil
}
