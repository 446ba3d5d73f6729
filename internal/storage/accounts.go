package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"budgetbook/internal/core"
)

const createAccount = `
INSERT INTO accounts (name, type, balance_cents)
VALUES (?, ?, ?)
RETURNING id`

func (q *Queries) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	row := q.db.QueryRowContext(ctx, createAccount, a.Name, string(a.Type), a.Balance.Cents)
	if err := row.Scan(&a.ID); err != nil {
		if isUniqueViolation(err) {
			return core.Account{}, core.Conflictf("an account named %q already exists", a.Name)
		}
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

const getAccount = `
SELECT id, name, type, balance_cents
FROM accounts
WHERE id = ?`

func (q *Queries) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	var a core.Account
	var typ string
	err := q.db.QueryRowContext(ctx, getAccount, id).Scan(&a.ID, &a.Name, &typ, &a.Balance.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, &core.NotFoundError{Entity: "account", ID: id}
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.Type = core.AccountType(typ)
	return a, nil
}

const listAccounts = `
SELECT id, name, type, balance_cents
FROM accounts
ORDER BY name`

func (q *Queries) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

const updateAccount = `
UPDATE accounts
SET name = ?, type = ?, balance_cents = ?
WHERE id = ?`

func (q *Queries) UpdateAccount(ctx context.Context, a core.Account) error {
	res, err := q.db.ExecContext(ctx, updateAccount, a.Name, string(a.Type), a.Balance.Cents, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Conflictf("an account named %q already exists", a.Name)
		}
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "account", ID: a.ID}
	}
	return nil
}

const adjustAccountBalance = `
UPDATE accounts
SET balance_cents = balance_cents + ?
WHERE id = ?`

// AdjustAccountBalance applies a signed delta in cents to the account's
// running balance. Callers run this inside the same transaction as the
// transaction-row change it belongs to.
func (q *Queries) AdjustAccountBalance(ctx context.Context, id, deltaCents int64) error {
	res, err := q.db.ExecContext(ctx, adjustAccountBalance, deltaCents, id)
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "account", ID: id}
	}
	return nil
}

const deleteAccount = `
DELETE FROM accounts
WHERE id = ?`

func (q *Queries) DeleteAccount(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "account", ID: id}
	}
	return nil
}
