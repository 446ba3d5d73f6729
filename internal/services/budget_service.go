package services

import (
	"context"
	"log/slog"

	"budgetbook/internal/amqp"
	"budgetbook/internal/core"
)

// BudgetService manages monthly targets and evaluates them against posted
// spend. It shares the ledger's mutation lock so budget writes never race
// transaction edits.
type BudgetService struct {
	ledger     *LedgerService
	amqpClient *amqp.Client
}

func NewBudgetService(ledger *LedgerService, amqpClient *amqp.Client) *BudgetService {
	return &BudgetService{
		ledger:     ledger,
		amqpClient: amqpClient,
	}
}

func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	s.ledger.Lock()
	defer s.ledger.Unlock()

	if _, err := s.ledger.Storage().Queries().GetCategory(ctx, b.CategoryID); err != nil {
		return core.Budget{}, err
	}

	created, err := s.ledger.Storage().Queries().CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, err
	}

	s.publishEvent(ctx, amqp.EventBudgetCreated, created.ID)
	return created, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	return s.ledger.Storage().Queries().GetBudget(ctx, id)
}

// SetTarget replaces the budget's target. Category and period are fixed at
// creation; retargeting a different month means a new budget.
func (s *BudgetService) SetTarget(ctx context.Context, id int64, target core.Money) (core.Budget, error) {
	if target.IsNegative() {
		return core.Budget{}, core.Validationf("target must not be negative")
	}

	s.ledger.Lock()
	defer s.ledger.Unlock()

	if err := s.ledger.Storage().Queries().UpdateBudgetTarget(ctx, id, target); err != nil {
		return core.Budget{}, err
	}

	b, err := s.ledger.Storage().Queries().GetBudget(ctx, id)
	if err != nil {
		return core.Budget{}, err
	}

	s.publishEvent(ctx, amqp.EventBudgetTargetSet, id)
	return b, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id int64) error {
	s.ledger.Lock()
	defer s.ledger.Unlock()

	if err := s.ledger.Storage().Queries().DeleteBudget(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, amqp.EventBudgetDeleted, id)
	return nil
}

// Evaluate joins every budget of the period with its posted spend. Lines
// come back in category name order. A budget is Over exactly when remaining
// is negative.
func (s *BudgetService) Evaluate(ctx context.Context, p core.Period) ([]core.BudgetLine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	q := s.ledger.Storage().Queries()
	rows, err := q.ListBudgetsByPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	start, end := p.Range()
	lines := make([]core.BudgetLine, 0, len(rows))
	for _, r := range rows {
		spent, err := q.SumCategorySpend(ctx, r.Budget.CategoryID, start, end)
		if err != nil {
			return nil, err
		}

		line := core.BudgetLine{
			BudgetID:   r.Budget.ID,
			CategoryID: r.Budget.CategoryID,
			Category:   r.CategoryName,
			Target:     r.Budget.Target,
			Spent:      spent,
			Remaining:  r.Budget.Target.Sub(spent),
			Status:     core.BudgetOK,
		}
		if line.Remaining.IsNegative() {
			line.Status = core.BudgetOver
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *BudgetService) publishEvent(ctx context.Context, kind string, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, kind, "budget", id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget event",
			"kind", kind, "id", id, "error", err)
	}
}
