package services

import (
	"context"
	"testing"

	"budgetbook/internal/core"
)

func TestComputeStatus(t *testing.T) {
	ledger := newTestLedger(t)
	budgets := NewBudgetService(ledger, nil)
	status := NewStatusService(ledger, budgets)
	ctx := context.Background()

	a := mustAccount(t, ledger, "Checking", 0)
	salary := mustCategory(t, ledger, "Salary", core.Income)
	rent := mustCategory(t, ledger, "Rent", core.Expense)
	fun := mustCategory(t, ledger, "Fun", core.Expense)

	add := func(catID int64, d core.Date, cents int64, planned bool) {
		t.Helper()
		if _, err := ledger.CreateTransaction(ctx, core.Transaction{
			Date: d, AccountID: a.ID, CategoryID: catID,
			Amount: core.Money{Cents: cents}, Planned: planned,
		}); err != nil {
			t.Fatal(err)
		}
	}

	// Current month: income and expense both count toward gross movement.
	add(salary.ID, core.NewDate(2026, 8, 1), 250000, false)
	add(rent.ID, core.NewDate(2026, 8, 2), 80000, false)
	// Other month: excluded from month spend.
	add(rent.ID, core.NewDate(2026, 7, 2), 80000, false)
	// Planned transactions count toward the planned total in any month.
	add(fun.ID, core.NewDate(2026, 8, 20), 5000, true)
	add(fun.ID, core.NewDate(2026, 11, 20), 7000, true)

	// One budget over target, one within.
	if _, err := budgets.CreateBudget(ctx, core.Budget{
		CategoryID: rent.ID, Period: core.Period{Month: 8, Year: 2026}, Target: core.Money{Cents: 70000},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := budgets.CreateBudget(ctx, core.Budget{
		CategoryID: fun.ID, Period: core.Period{Month: 8, Year: 2026}, Target: core.Money{Cents: 10000},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := status.ComputeStatus(ctx, core.Period{Month: 8, Year: 2026})
	if err != nil {
		t.Fatal(err)
	}

	if got.MonthSpend.Cents != 330000 {
		t.Errorf("MonthSpend = %d, want 330000", got.MonthSpend.Cents)
	}
	if got.PlannedTotal.Cents != 12000 {
		t.Errorf("PlannedTotal = %d, want 12000", got.PlannedTotal.Cents)
	}
	if got.AlarmCount != 1 {
		t.Errorf("AlarmCount = %d, want 1", got.AlarmCount)
	}
}

func TestComputeStatusEmptyLedger(t *testing.T) {
	ledger := newTestLedger(t)
	budgets := NewBudgetService(ledger, nil)
	status := NewStatusService(ledger, budgets)

	got, err := status.ComputeStatus(context.Background(), core.Period{Month: 1, Year: 2026})
	if err != nil {
		t.Fatal(err)
	}
	if got.MonthSpend.Cents != 0 || got.PlannedTotal.Cents != 0 || got.AlarmCount != 0 {
		t.Errorf("empty ledger status = %+v", got)
	}
}

func TestComputeStatusRejectsBadPeriod(t *testing.T) {
	ledger := newTestLedger(t)
	status := NewStatusService(ledger, NewBudgetService(ledger, nil))

	if _, err := status.ComputeStatus(context.Background(), core.Period{Month: 13, Year: 2026}); !core.IsValidation(err) {
		t.Errorf("error = %v, want validation", err)
	}
}
