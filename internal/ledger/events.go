package ledger

import (
	"context"
	"log"

	"github.com/harborbank/ledger-service/internal/events"
	"github.com/harborbank/ledger-service/internal/models"
)

// EventPublisher decouples the account services from the Redis streams
// publisher. A nil publisher disables event emission entirely.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Event emission never fails a ledger operation: failures are logged and the
// operation result stands.
func emitAccountCreated(p EventPublisher, acct *models.Account) {
	if p == nil {
		return
	}
	err := p.Publish(context.Background(), events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:   acct.ID.String(),
		AccountType: string(acct.Type),
		OwnerName:   acct.Owner.Name,
		OwnerCPF:    acct.Owner.CPF,
	})
	if err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
}

func emitTransaction(p EventPublisher, acct *models.Account, st models.Statement) {
	if p == nil {
		return
	}
	err := p.Publish(context.Background(), events.TransactionEventsStream, events.TransactionRecorded, events.TransactionRecordedEvent{
		AccountID:   acct.ID.String(),
		AccountType: string(acct.Type),
		Kind:        string(st.Kind),
		Amount:      st.Amount,
		RecordedAt:  st.Date,
	})
	if err != nil {
		log.Printf("Failed to publish transaction.recorded event: %v", err)
	}

	err = p.Publish(context.Background(), events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  acct.ID.String(),
		NewBalance: acct.Balance,
		Change:     st.Amount,
	})
	if err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
}
