package core

import (
	"strings"
)

const (
	Checking AccountType = "Checking"
	Savings  AccountType = "Savings"
	Cash     AccountType = "Cash"
	Credit   AccountType = "Credit"

	Income  CategoryType = "Income"
	Expense CategoryType = "Expense"
)

type (
	AccountType  string
	CategoryType string

	// Account holds a single running balance in one currency. The balance is
	// owned by the ledger: it always equals the opening value plus the signed
	// effects of every posted transaction currently referencing the account.
	Account struct {
		ID      int64
		Name    string
		Type    AccountType
		Balance Money
	}

	// Category classifies transactions and determines their sign: Income
	// effects increase the owning account's balance, Expense effects decrease
	// it.
	Category struct {
		ID          int64
		Name        string
		Type        CategoryType
		Description string
	}

	// Transaction is a single signed effect against exactly one account and
	// one category. Amount is always a positive magnitude; the direction comes
	// from the category type. A planned transaction is recorded for
	// forecasting but excluded from balances and spend.
	Transaction struct {
		ID         int64
		Date       Date
		AccountID  int64
		CategoryID int64
		Payee      string
		Amount     Money
		Note       string
		Planned    bool
	}

	// Budget is a monthly spend target for one category. At most one budget
	// exists per (category, month, year).
	Budget struct {
		ID         int64
		CategoryID int64
		Period     Period
		Target     Money
	}
)

func (t AccountType) Validate() error {
	switch t {
	case Checking, Savings, Cash, Credit:
		return nil
	}
	return Validationf("invalid account type %q", string(t))
}

func (t CategoryType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return Validationf("invalid category type %q", string(t))
}

// Sign returns +1 for Income and -1 for Expense.
func (t CategoryType) Sign() int64 {
	if t == Income {
		return 1
	}
	return -1
}

// SignedEffect is the account balance delta of a posted transaction amount
// under the given category type: +amount for Income, -amount for Expense.
func SignedEffect(t CategoryType, amount Money) Money {
	return Money{Cents: t.Sign() * amount.Cents}
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return Validationf("account name is required")
	}
	if len(a.Name) > 100 {
		return Validationf("account name too long (max 100 characters)")
	}
	if err := a.Type.Validate(); err != nil {
		return err
	}
	if a.Balance.IsNegative() {
		return Validationf("opening balance must not be negative")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Validationf("category name is required")
	}
	if len(c.Name) > 100 {
		return Validationf("category name too long (max 100 characters)")
	}
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if len(c.Description) > 500 {
		return Validationf("description too long (max 500 characters)")
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.AccountID == 0 {
		return Validationf("account is required")
	}
	if t.CategoryID == 0 {
		return Validationf("category is required")
	}
	if t.Amount.Cents <= 0 {
		return Validationf("amount must be positive")
	}
	if len(t.Payee) > 200 {
		return Validationf("payee too long (max 200 characters)")
	}
	if len(t.Note) > 500 {
		return Validationf("note too long (max 500 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if b.CategoryID == 0 {
		return Validationf("category is required")
	}
	if err := b.Period.Validate(); err != nil {
		return err
	}
	if b.Target.IsNegative() {
		return Validationf("target must not be negative")
	}
	return nil
}
