// Package worker recomputes the budget status whenever a ledger mutation is
// announced on the event stream, and logs alarm-count transitions so an
// operator sees overspending without polling the API.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"budgetbook/internal/amqp"
	"budgetbook/internal/core"
	"budgetbook/internal/services"
)

// AlarmWorker watches the current period's status. It reacts to ledger
// events and also recomputes on a fixed interval as a backup in case
// messages are lost.
type AlarmWorker struct {
	status *services.StatusService

	mu        sync.Mutex
	lastCount int
	primed    bool
}

func NewAlarmWorker(status *services.StatusService) *AlarmWorker {
	return &AlarmWorker{status: status}
}

// HandleEvent processes a single ledger event from AMQP.
func (w *AlarmWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"kind", msg.Kind,
		"entity", msg.Entity,
		"id", msg.ID)

	return w.Recompute(ctx)
}

// Recompute evaluates the current period and logs when the number of
// over-target budgets changes.
func (w *AlarmWorker) Recompute(ctx context.Context) error {
	period := core.PeriodOf(time.Now())
	st, err := w.status.ComputeStatus(ctx, period)
	if err != nil {
		return fmt.Errorf("compute status: %w", err)
	}

	w.mu.Lock()
	prev, primed := w.lastCount, w.primed
	w.lastCount = st.AlarmCount
	w.primed = true
	w.mu.Unlock()

	switch {
	case !primed:
		slog.InfoContext(ctx, "Status baseline established",
			"month", period.Month,
			"year", period.Year,
			"alarm_count", st.AlarmCount,
			"month_spend", st.MonthSpend.String(),
			"planned_total", st.PlannedTotal.String())
	case st.AlarmCount > prev:
		slog.WarnContext(ctx, "Budgets went over target",
			"month", period.Month,
			"year", period.Year,
			"alarm_count", st.AlarmCount,
			"previous", prev)
	case st.AlarmCount < prev:
		slog.InfoContext(ctx, "Budget alarms cleared",
			"month", period.Month,
			"year", period.Year,
			"alarm_count", st.AlarmCount,
			"previous", prev)
	}

	return nil
}

// AlarmCount returns the count observed by the most recent recompute.
func (w *AlarmWorker) AlarmCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastCount
}
