package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/models"
)

// stubRepo is an in-memory AccountRepository double with the same
// copy-on-both-sides contract as the real stores.
type stubRepo struct {
	accounts map[uuid.UUID]*models.Account
}

func newStubRepo() *stubRepo {
	return &stubRepo{accounts: make(map[uuid.UUID]*models.Account)}
}

func (r *stubRepo) Find(id uuid.UUID) (*models.Account, error) {
	acct, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct.Clone(), nil
}

func (r *stubRepo) Save(acct *models.Account) error {
	r.accounts[acct.ID] = acct.Clone()
	return nil
}

func (r *stubRepo) Delete(id uuid.UUID) error {
	if _, ok := r.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func anOwner() models.Owner {
	return models.Owner{Name: "Maria Silva", CPF: "52998224725"}
}

func anotherOwner() models.Owner {
	return models.Owner{Name: "Joao Souza", CPF: "15350946056"}
}

var testTime = time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)
