package http

import (
	"context"

	"budgetbook/internal/core"
)

// LedgerEngine is what the handlers need from the ledger service.
type LedgerEngine interface {
	CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)
	UpdateAccount(ctx context.Context, id int64, name string, typ core.AccountType) (core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) (core.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByPeriod(ctx context.Context, p core.Period) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// BudgetEvaluator manages monthly targets and joins them with posted spend.
type BudgetEvaluator interface {
	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	GetBudget(ctx context.Context, id int64) (core.Budget, error)
	SetTarget(ctx context.Context, id int64, target core.Money) (core.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
	Evaluate(ctx context.Context, p core.Period) ([]core.BudgetLine, error)
}

// StatusReader computes the whole-portfolio aggregate.
type StatusReader interface {
	ComputeStatus(ctx context.Context, p core.Period) (core.Status, error)
}
