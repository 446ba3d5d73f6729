package services

import (
	"context"

	"budgetbook/internal/core"
)

// StatusService derives the whole-portfolio aggregate for one period: the
// month's posted cash movement, the planned total, and the number of
// budgets over target.
type StatusService struct {
	ledger  *LedgerService
	budgets *BudgetService
}

func NewStatusService(ledger *LedgerService, budgets *BudgetService) *StatusService {
	return &StatusService{
		ledger:  ledger,
		budgets: budgets,
	}
}

// ComputeStatus evaluates the period on demand; nothing is cached.
// MonthSpend sums posted amounts as recorded, without category sign, so it
// reports gross cash movement rather than net flow. PlannedTotal covers
// planned transactions in every month, not just this one.
func (s *StatusService) ComputeStatus(ctx context.Context, p core.Period) (core.Status, error) {
	if err := p.Validate(); err != nil {
		return core.Status{}, err
	}

	q := s.ledger.Storage().Queries()
	start, end := p.Range()

	monthSpend, err := q.SumPostedInRange(ctx, start, end)
	if err != nil {
		return core.Status{}, err
	}

	plannedTotal, err := q.SumPlanned(ctx)
	if err != nil {
		return core.Status{}, err
	}

	lines, err := s.budgets.Evaluate(ctx, p)
	if err != nil {
		return core.Status{}, err
	}
	alarms := 0
	for _, line := range lines {
		if line.Status == core.BudgetOver {
			alarms++
		}
	}

	return core.Status{
		Period:       p,
		MonthSpend:   monthSpend,
		PlannedTotal: plannedTotal,
		AlarmCount:   alarms,
	}, nil
}
