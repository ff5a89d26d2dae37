package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	AccountCreated      = "account.created"
	TransactionRecorded = "transaction.recorded"
	BalanceUpdated      = "balance.updated"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	OwnerName   string `json:"ownerName"`
	OwnerCPF    string `json:"ownerCpf"`
}

type TransactionRecordedEvent struct {
	AccountID   string          `json:"accountId"`
	AccountType string          `json:"accountType"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

type BalanceUpdatedEvent struct {
	AccountID  string          `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}
