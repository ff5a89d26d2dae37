package models

import "github.com/google/uuid"

// AccountView is the read-optimised projection of an account's immutable
// metadata. Balances and statements are deliberately absent: savings balances
// accrue interest on read, so caching them would serve stale money.
type AccountView struct {
	ID    uuid.UUID   `json:"id"`
	Type  AccountType `json:"accountType"`
	Owner Owner       `json:"owner"`
}
