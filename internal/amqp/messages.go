package amqp

import "time"

// Event kinds carried on the ledger event stream.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventBudgetCreated      = "budget.created"
	EventBudgetTargetSet    = "budget.target_changed"
	EventBudgetDeleted      = "budget.deleted"
)

// LedgerEventMessage announces that a ledger mutation was committed. It
// carries identifiers only; consumers re-read current state from storage.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	Entity    string    `json:"entity"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
