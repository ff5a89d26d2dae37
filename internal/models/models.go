package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType is fixed for the lifetime of an account.
type AccountType string

const (
	Credit AccountType = "CREDIT"
	Saving AccountType = "SAVING"
)

// TransactionKind labels a single statement entry.
type TransactionKind string

const (
	Deposit  TransactionKind = "DEPOSIT"
	Withdraw TransactionKind = "WITHDRAW"
	Transfer TransactionKind = "TRANSFER"
	Income   TransactionKind = "INCOME"
)

type Owner struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// Statement is an immutable ledger entry. Deposits, income and incoming
// transfer legs carry positive amounts; withdrawals and outgoing legs negative.
type Statement struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"value"`
	Kind   TransactionKind `json:"transaction"`
}

type Account struct {
	ID         uuid.UUID       `json:"id"`
	Type       AccountType     `json:"accountType"`
	Owner      Owner           `json:"owner"`
	Balance    decimal.Decimal `json:"balance"`
	Statements []Statement     `json:"-"`

	// LastTransaction is the accrual watermark on savings accounts; transfer
	// legs stamp it on credit accounts as well.
	LastTransaction time.Time `json:"-"`

	// Same-day withdrawal fee bookkeeping (credit accounts).
	LastWithdraw  time.Time `json:"-"`
	WithdrawCount int64     `json:"-"`

	// Outgoing-transfer bookkeeping (consulted by the transfer fee rules for
	// savings accounts; maintained on credit accounts for symmetry).
	LastTransfer  time.Time `json:"-"`
	TransferCount int64     `json:"-"`
}

// Clone returns a deep copy safe to hand across the repository boundary.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Statements = append([]Statement(nil), a.Statements...)
	return &cp
}

// AddStatement appends one entry to the account's statement list.
// Entries are never reordered or removed once appended.
func (a *Account) AddStatement(s Statement) {
	a.Statements = append(a.Statements, s)
}
