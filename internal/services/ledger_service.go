// Package services holds the ledger engine: the mutation and evaluation
// logic layered between HTTP and SQLite storage.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"budgetbook/internal/amqp"
	"budgetbook/internal/core"
	"budgetbook/internal/storage"
)

// LedgerService orchestrates account, category and transaction operations.
// All mutations run under one mutex: balance maintenance reverses an old
// effect and applies a new one, and interleaving those phases across
// concurrent edits would corrupt running balances.
type LedgerService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client

	mu sync.Mutex
}

func NewLedgerService(storage *storage.Repository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Lock exposes the mutation lock so sibling services share it.
func (s *LedgerService) Lock()   { s.mu.Lock() }
func (s *LedgerService) Unlock() { s.mu.Unlock() }

// Storage exposes the repository to sibling services built on the same pool.
func (s *LedgerService) Storage() *storage.Repository { return s.storage }

func (s *LedgerService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.storage.Queries().CreateAccount(ctx, a)
	if err != nil {
		return core.Account{}, err
	}
	return created, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	return s.storage.Queries().GetAccount(ctx, id)
}

func (s *LedgerService) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return s.storage.Queries().ListAccounts(ctx)
}

// UpdateAccount renames or retypes an account. The balance is not editable
// here: it is derived state owned by transaction postings.
func (s *LedgerService) UpdateAccount(ctx context.Context, id int64, name string, typ core.AccountType) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.storage.Queries().GetAccount(ctx, id)
	if err != nil {
		return core.Account{}, err
	}
	a.Name = name
	a.Type = typ
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := s.storage.Queries().UpdateAccount(ctx, a); err != nil {
		return core.Account{}, err
	}
	return a, nil
}

// DeleteAccount refuses to delete an account that still has transactions,
// posted or planned.
func (s *LedgerService) DeleteAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.storage.Queries().CountTransactionsByAccount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return core.Conflictf("account is used by %d transaction(s)", n)
	}
	return s.storage.Queries().DeleteAccount(ctx, id)
}

func (s *LedgerService) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Queries().CreateCategory(ctx, c)
}

func (s *LedgerService) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	return s.storage.Queries().GetCategory(ctx, id)
}

func (s *LedgerService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.storage.Queries().ListCategories(ctx)
}

// UpdateCategory edits name and description. The type is immutable once
// created: flipping Income/Expense would silently invert the balance effect
// of every posted transaction in the category.
func (s *LedgerService) UpdateCategory(ctx context.Context, id int64, name, description string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.storage.Queries().GetCategory(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	c.Name = name
	c.Description = description
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.storage.Queries().UpdateCategory(ctx, c); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

// DeleteCategory refuses to delete a category still referenced by
// transactions or budgets.
func (s *LedgerService) DeleteCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.storage.Queries().CountTransactionsByCategory(ctx, id)
	if err != nil {
		return err
	}
	budgets, err := s.storage.Queries().CountBudgetsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if txns > 0 || budgets > 0 {
		return core.Conflictf("category is used by %d transaction(s) and %d budget(s)", txns, budgets)
	}
	return s.storage.Queries().DeleteCategory(ctx, id)
}

// CreateTransaction records a transaction and, when posted, applies its
// signed effect to the owning account's balance in the same SQL
// transaction.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var created core.Transaction
	err := s.storage.WithTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetAccount(ctx, t.AccountID); err != nil {
			return err
		}
		category, err := q.GetCategory(ctx, t.CategoryID)
		if err != nil {
			return err
		}

		created, err = q.CreateTransaction(ctx, t)
		if err != nil {
			return err
		}

		if !t.Planned {
			effect := core.SignedEffect(category.Type, t.Amount)
			if err := q.AdjustAccountBalance(ctx, t.AccountID, effect.Cents); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return core.Transaction{}, err
	}

	s.publishEvent(ctx, amqp.EventTransactionCreated, "transaction", created.ID)
	return created, nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	return s.storage.Queries().GetTransaction(ctx, id)
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.Queries().ListTransactions(ctx)
}

// ListTransactionsByPeriod returns the month's transactions, posted and
// planned, newest first.
func (s *LedgerService) ListTransactionsByPeriod(ctx context.Context, p core.Period) ([]core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, end := p.Range()
	return s.storage.Queries().ListTransactionsInRange(ctx, start, end)
}

// UpdateTransaction replaces every editable field at once. Balance
// maintenance is two-phase: reverse the old posted effect against the old
// account, store the new row, then apply the new posted effect against the
// new account. Both phases run in one SQL transaction, so a failure leaves
// balances untouched.
func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.WithTx(ctx, func(q *storage.Queries) error {
		old, err := q.GetTransaction(ctx, t.ID)
		if err != nil {
			return err
		}

		if !old.Planned {
			oldCategory, err := q.GetCategory(ctx, old.CategoryID)
			if err != nil {
				return err
			}
			reverse := core.SignedEffect(oldCategory.Type, old.Amount).Neg()
			if err := q.AdjustAccountBalance(ctx, old.AccountID, reverse.Cents); err != nil {
				return err
			}
		}

		if _, err := q.GetAccount(ctx, t.AccountID); err != nil {
			return err
		}
		newCategory, err := q.GetCategory(ctx, t.CategoryID)
		if err != nil {
			return err
		}

		if err := q.UpdateTransaction(ctx, t); err != nil {
			return err
		}

		if !t.Planned {
			effect := core.SignedEffect(newCategory.Type, t.Amount)
			if err := q.AdjustAccountBalance(ctx, t.AccountID, effect.Cents); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return core.Transaction{}, err
	}

	s.publishEvent(ctx, amqp.EventTransactionUpdated, "transaction", t.ID)
	return t, nil
}

// DeleteTransaction removes the row after reversing its posted effect.
// Deleting a planned transaction touches no balance.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.WithTx(ctx, func(q *storage.Queries) error {
		t, err := q.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		if !t.Planned {
			category, err := q.GetCategory(ctx, t.CategoryID)
			if err != nil {
				return err
			}
			reverse := core.SignedEffect(category.Type, t.Amount).Neg()
			if err := q.AdjustAccountBalance(ctx, t.AccountID, reverse.Cents); err != nil {
				return err
			}
		}

		return q.DeleteTransaction(ctx, id)
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, amqp.EventTransactionDeleted, "transaction", id)
	return nil
}

// CategorySpend totals the category's posted amounts inside the period.
func (s *LedgerService) CategorySpend(ctx context.Context, categoryID int64, p core.Period) (core.Money, error) {
	if err := p.Validate(); err != nil {
		return core.Money{}, err
	}
	if _, err := s.storage.Queries().GetCategory(ctx, categoryID); err != nil {
		return core.Money{}, err
	}
	start, end := p.Range()
	return s.storage.Queries().SumCategorySpend(ctx, categoryID, start, end)
}

func (s *LedgerService) publishEvent(ctx context.Context, kind, entity string, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, kind, entity, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", kind, "entity", entity, "id", id, "error", err)
		// Don't fail the request - the mutation is committed locally
	}
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
