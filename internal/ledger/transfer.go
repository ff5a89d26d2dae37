package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/models"
)

// transferFee is the flat multiplier on credit-to-credit transfers.
var transferFee = decimal.RequireFromString("1.05")

// AccountOperations is the slice of the account services the orchestrator
// needs; both CreditAccountService and SavingsAccountService satisfy it.
type AccountOperations interface {
	GetAccount(id uuid.UUID) (*models.Account, error)
	WithdrawForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error)
	DepositForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error)
}

// Transfer describes one requested movement between two accounts.
type Transfer struct {
	SourceID   uuid.UUID
	SourceType models.AccountType
	TargetID   uuid.UUID
	TargetType models.AccountType
	Amount     decimal.Decimal
}

// TransferService moves value between the two account kinds, dispatching each
// leg to the owning service.
type TransferService struct {
	services map[models.AccountType]AccountOperations
	now      func() time.Time
}

func NewTransferService(credit *CreditAccountService, savings *SavingsAccountService) *TransferService {
	return &TransferService{
		services: map[models.AccountType]AccountOperations{
			models.Credit: credit,
			models.Saving: savings,
		},
		now: time.Now,
	}
}

// Transfer debits the source and credits the target with one shared
// timestamp so both statements correlate in time. Fee rules:
//
//   - credit→credit: the flat transfer fee, always;
//   - savings→credit with an outgoing transfer already made today: the
//     same-day fee table over the source's transfer counter;
//   - every other shape (first outgoing of the day, credit→savings,
//     savings→savings): fee-free.
//
// Whenever a savings account sits on either side, both owners must share the
// same identifier. The target always receives the nominal amount; the source
// absorbs the fee and its resulting balance is returned.
//
// The two legs are not atomic: a target-leg failure after the source was
// debited leaves the debit in place. Callers must tolerate that.
func (s *TransferService) Transfer(t Transfer) (decimal.Decimal, error) {
	if !t.Amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot transfer non-positive value", ErrInvalidTransaction)
	}

	source, ok := s.services[t.SourceType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown account type %q", ErrInvalidTransaction, t.SourceType)
	}
	target, ok := s.services[t.TargetType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown account type %q", ErrInvalidTransaction, t.TargetType)
	}

	now := s.now()
	debit := t.Amount

	if t.SourceType == models.Saving || t.TargetType == models.Saving {
		sourceAcct, err := source.GetAccount(t.SourceID)
		if err != nil {
			return decimal.Zero, err
		}
		targetAcct, err := target.GetAccount(t.TargetID)
		if err != nil {
			return decimal.Zero, err
		}

		if sourceAcct.Owner.CPF != targetAcct.Owner.CPF {
			return decimal.Zero, fmt.Errorf("%w: cannot transfer from/to saving account for different owners", ErrInvalidTransaction)
		}

		if t.SourceType == models.Saving && t.TargetType == models.Credit &&
			!sourceAcct.LastTransfer.IsZero() && sameDay(sourceAcct.LastTransfer, now) {
			debit = t.Amount.Mul(sameDayFee(sourceAcct.TransferCount))
		}
	} else {
		debit = t.Amount.Mul(transferFee)
	}

	balance, err := source.WithdrawForTransfer(debit, t.SourceID, now)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := target.DepositForTransfer(t.Amount, t.TargetID, now); err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}
