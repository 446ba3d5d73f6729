package core

const (
	// BudgetOK means posted spend is within the target.
	BudgetOK = "OK"
	// BudgetOver means posted spend exceeded the target (remaining < 0).
	BudgetOver = "Over"
)

// BudgetLine is one evaluated budget row: the stored target joined with the
// month's posted spend. Nothing here is persisted; it is derived on demand.
type BudgetLine struct {
	BudgetID   int64
	CategoryID int64
	Category   string
	Target     Money
	Spent      Money
	Remaining  Money
	Status     string
}

// Status is the whole-portfolio aggregate shown in the status display.
// MonthSpend sums posted amounts in the current month as recorded, without
// applying category sign: it reports raw cash movement, not net flow.
type Status struct {
	Period       Period
	MonthSpend   Money
	PlannedTotal Money
	AlarmCount   int
}
