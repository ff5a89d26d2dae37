package ledger

import (
	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/models"
)

// AccountRepository is the backing-store port shared by both account
// services. The fee and accrual algorithms are implemented once, in the
// services, against this interface; the in-memory and PostgreSQL stores both
// satisfy it.
//
// Find returns a detached copy: mutations become visible only through Save.
type AccountRepository interface {
	Find(id uuid.UUID) (*models.Account, error)
	Save(acct *models.Account) error
	Delete(id uuid.UUID) error
}
