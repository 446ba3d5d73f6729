package services

import (
	"context"
	"testing"

	"budgetbook/internal/core"
)

func newTestBudgets(t *testing.T) (*LedgerService, *BudgetService) {
	t.Helper()
	ledger := newTestLedger(t)
	return ledger, NewBudgetService(ledger, nil)
}

func TestEvaluateBudget(t *testing.T) {
	ledger, budgets := newTestBudgets(t)
	ctx := context.Background()

	a := mustAccount(t, ledger, "Checking", 0)
	rent := mustCategory(t, ledger, "Rent", core.Expense)

	if _, err := budgets.CreateBudget(ctx, core.Budget{
		CategoryID: rent.ID,
		Period:     core.Period{Month: 8, Year: 2026},
		Target:     core.Money{Cents: 80000},
	}); err != nil {
		t.Fatal(err)
	}

	add := func(d core.Date, cents int64, planned bool) {
		t.Helper()
		if _, err := ledger.CreateTransaction(ctx, core.Transaction{
			Date: d, AccountID: a.ID, CategoryID: rent.ID,
			Amount: core.Money{Cents: cents}, Planned: planned,
		}); err != nil {
			t.Fatal(err)
		}
	}
	add(core.NewDate(2026, 8, 1), 40000, false)
	add(core.NewDate(2026, 8, 15), 42000, false)
	add(core.NewDate(2026, 7, 20), 40000, false) // july, excluded
	add(core.NewDate(2026, 8, 25), 5000, true)   // planned, excluded

	lines, err := budgets.Evaluate(ctx, core.Period{Month: 8, Year: 2026})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	line := lines[0]
	if line.Category != "Rent" {
		t.Errorf("Category = %s", line.Category)
	}
	if line.Spent.Cents != 82000 {
		t.Errorf("Spent = %d, want 82000", line.Spent.Cents)
	}
	if line.Remaining.Cents != -2000 {
		t.Errorf("Remaining = %d, want -2000", line.Remaining.Cents)
	}
	if line.Status != core.BudgetOver {
		t.Errorf("Status = %s, want Over", line.Status)
	}
}

func TestEvaluateExactTargetIsOK(t *testing.T) {
	ledger, budgets := newTestBudgets(t)
	ctx := context.Background()

	a := mustAccount(t, ledger, "Checking", 0)
	c := mustCategory(t, ledger, "Groceries", core.Expense)

	if _, err := budgets.CreateBudget(ctx, core.Budget{
		CategoryID: c.ID,
		Period:     core.Period{Month: 3, Year: 2026},
		Target:     core.Money{Cents: 50000},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.CreateTransaction(ctx, core.Transaction{
		Date: core.NewDate(2026, 3, 10), AccountID: a.ID, CategoryID: c.ID,
		Amount: core.Money{Cents: 50000},
	}); err != nil {
		t.Fatal(err)
	}

	lines, err := budgets.Evaluate(ctx, core.Period{Month: 3, Year: 2026})
	if err != nil {
		t.Fatal(err)
	}
	// Spending exactly the target is still OK; Over needs remaining < 0.
	if lines[0].Status != core.BudgetOK || lines[0].Remaining.Cents != 0 {
		t.Errorf("line = %+v, want OK with zero remaining", lines[0])
	}
}

func TestCreateBudgetDuplicateConflicts(t *testing.T) {
	ledger, budgets := newTestBudgets(t)
	ctx := context.Background()

	c := mustCategory(t, ledger, "Rent", core.Expense)
	b := core.Budget{CategoryID: c.ID, Period: core.Period{Month: 5, Year: 2026}, Target: core.Money{Cents: 10000}}

	created, err := budgets.CreateBudget(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := budgets.CreateBudget(ctx, b); !core.IsConflict(err) {
		t.Fatalf("duplicate error = %v, want conflict", err)
	}

	// Delete frees the slot for recreation.
	if err := budgets.DeleteBudget(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := budgets.CreateBudget(ctx, b); err != nil {
		t.Fatalf("recreate after delete error = %v", err)
	}
}

func TestCreateBudgetUnknownCategory(t *testing.T) {
	_, budgets := newTestBudgets(t)

	_, err := budgets.CreateBudget(context.Background(), core.Budget{
		CategoryID: 999, Period: core.Period{Month: 5, Year: 2026},
	})
	if !core.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestSetTarget(t *testing.T) {
	ledger, budgets := newTestBudgets(t)
	ctx := context.Background()

	c := mustCategory(t, ledger, "Rent", core.Expense)
	created, err := budgets.CreateBudget(ctx, core.Budget{
		CategoryID: c.ID, Period: core.Period{Month: 5, Year: 2026}, Target: core.Money{Cents: 10000},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := budgets.SetTarget(ctx, created.ID, core.Money{Cents: 25000})
	if err != nil {
		t.Fatal(err)
	}
	if got.Target.Cents != 25000 {
		t.Errorf("Target = %d, want 25000", got.Target.Cents)
	}

	if _, err := budgets.SetTarget(ctx, created.ID, core.Money{Cents: -1}); !core.IsValidation(err) {
		t.Errorf("negative target error = %v, want validation", err)
	}
	if _, err := budgets.SetTarget(ctx, 999, core.Money{Cents: 100}); !core.IsNotFound(err) {
		t.Errorf("missing budget error = %v, want not found", err)
	}
}
