package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/events"
	"github.com/harborbank/ledger-service/internal/ledger"
	"github.com/harborbank/ledger-service/internal/models"
	redisx "github.com/harborbank/ledger-service/internal/redis"
)

// AccountDirectory is the lookup slice of an account service.
type AccountDirectory interface {
	GetAccount(id uuid.UUID) (*models.Account, error)
}

// AccountQueryService serves the cross-type account directory: immutable
// account metadata (id, kind, owner) projected from account.created events
// into Redis, with the owning services as fallback. Balances never pass
// through here — savings balances mutate on read.
type AccountQueryService struct {
	cache   *redisx.ViewCache[models.AccountView]
	credit  AccountDirectory
	savings AccountDirectory
}

func NewAccountQueryService(cache *redisx.ViewCache[models.AccountView], credit, savings AccountDirectory) *AccountQueryService {
	return &AccountQueryService{cache: cache, credit: credit, savings: savings}
}

func viewKey(id uuid.UUID) string {
	return "account:view:" + id.String()
}

// GetAccountView returns directory metadata for an account of either kind.
func (s *AccountQueryService) GetAccountView(ctx context.Context, id uuid.UUID) (*models.AccountView, error) {
	if s.cache != nil {
		if view, ok := s.cache.Get(ctx, viewKey(id)); ok {
			return view, nil
		}
	}

	acct, err := s.credit.GetAccount(id)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		acct, err = s.savings.GetAccount(id)
	}
	if err != nil {
		return nil, err
	}

	view := &models.AccountView{ID: acct.ID, Type: acct.Type, Owner: acct.Owner}
	if s.cache != nil {
		s.cache.Set(ctx, viewKey(id), view)
	}
	return view, nil
}

// HandleAccountEvent projects account.created events into the view cache.
// Other event types on the stream are ignored.
func (s *AccountQueryService) HandleAccountEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.AccountCreated {
		return nil
	}

	dataBytes, _ := json.Marshal(event.Data)
	var data events.AccountCreatedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal account.created event: %w", err)
	}

	id, err := uuid.Parse(data.AccountID)
	if err != nil {
		return fmt.Errorf("invalid account id in account.created event: %w", err)
	}

	view := &models.AccountView{
		ID:    id,
		Type:  models.AccountType(data.AccountType),
		Owner: models.Owner{Name: data.OwnerName, CPF: data.OwnerCPF},
	}
	if s.cache != nil {
		s.cache.Set(ctx, viewKey(id), view)
	}
	return nil
}
