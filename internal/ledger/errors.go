package ledger

import "errors"

// Semantic errors surfaced by the account services and the transfer
// orchestrator. Callers match them with errors.Is; the HTTP layer maps them
// to statuses in one place.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidTransaction = errors.New("invalid transaction")
)
