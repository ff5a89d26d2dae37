package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/ledger"
	"github.com/harborbank/ledger-service/internal/models"
)

// MemoryAccountRepository is the default backing store: a mutex-guarded map
// of accounts. It hands out detached copies on both sides of the boundary so
// callers can never mutate stored state except through Save.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*models.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[uuid.UUID]*models.Account)}
}

func (r *MemoryAccountRepository) Find(id uuid.UUID) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return acct.Clone(), nil
}

func (r *MemoryAccountRepository) Save(acct *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[acct.ID] = acct.Clone()
	return nil
}

func (r *MemoryAccountRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return ledger.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}
