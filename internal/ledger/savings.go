package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/models"
)

// savingWithdrawFee is flat: savings withdrawals always cost 2%, with no
// same-day escalation.
var savingWithdrawFee = decimal.RequireFromString("1.02")

// SavingsAccountService owns the interest-accruing account kind. Interest is
// accrued lazily: every balance read or write first folds in the income due
// since the account's last transaction, then performs its own effect. There
// is no background timer, which keeps accrual deterministic under test.
type SavingsAccountService struct {
	mu        sync.Mutex
	repo      AccountRepository
	publisher EventPublisher
	now       func() time.Time
}

func NewSavingsAccountService(repo AccountRepository, publisher EventPublisher) *SavingsAccountService {
	return &SavingsAccountService{repo: repo, publisher: publisher, now: time.Now}
}

func (s *SavingsAccountService) CreateAccount(draft models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDraft(&draft, models.Saving); err != nil {
		return nil, err
	}

	draft.ID = uuid.New()
	draft.Balance = decimal.Zero
	draft.LastTransaction = s.now()
	if err := s.repo.Save(&draft); err != nil {
		return nil, err
	}

	emitAccountCreated(s.publisher, &draft)
	return &draft, nil
}

// GetAccount returns the account without accruing; the orchestrator uses it
// for owner and bookkeeping lookups, neither of which depends on income.
func (s *SavingsAccountService) GetAccount(id uuid.UUID) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *SavingsAccountService) GetBalance(id uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	s.accrueAccount(acct)
	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

func (s *SavingsAccountService) Deposit(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot deposit non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	s.accrueAccount(acct)

	now := s.now()
	acct.Balance = acct.Balance.Add(amount)
	acct.LastTransaction = now
	st := models.Statement{Date: now, Amount: amount, Kind: models.Deposit}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// DepositForTransfer credits the incoming leg of a transfer at exactly the
// given amount, after accruing any income due, stamped with the
// orchestrator's timestamp.
func (s *SavingsAccountService) DepositForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot deposit non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	s.accrueAccount(acct)

	acct.Balance = acct.Balance.Add(amount)
	acct.LastTransaction = transferTime
	st := models.Statement{Date: transferTime, Amount: amount, Kind: models.Transfer}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// Withdraw debits amount times the flat savings fee. Income due is accrued
// first; a rejected withdrawal persists that accrual but nothing else.
func (s *SavingsAccountService) Withdraw(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	s.accrueAccount(acct)

	final := acct.Balance.Sub(amount.Mul(savingWithdrawFee))
	if final.IsNegative() {
		if err := s.repo.Save(acct); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw more than current balance", ErrInvalidTransaction)
	}

	now := s.now()
	acct.Balance = final
	acct.LastTransaction = now
	st := models.Statement{Date: now, Amount: amount.Neg(), Kind: models.Withdraw}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// WithdrawForTransfer debits the outgoing leg at exactly the given amount
// (the orchestrator prices transfer fees) and advances the transfer
// bookkeeping the orchestrator's fee rule reads.
func (s *SavingsAccountService) WithdrawForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	s.accrueAccount(acct)

	final := acct.Balance.Sub(amount)
	if final.IsNegative() {
		if err := s.repo.Save(acct); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw more than current balance", ErrInvalidTransaction)
	}

	acct.Balance = final
	acct.LastTransaction = transferTime
	acct.LastTransfer = dateOf(transferTime)
	acct.TransferCount++
	st := models.Statement{Date: transferTime, Amount: amount.Neg(), Kind: models.Transfer}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

func (s *SavingsAccountService) GetStatement(id uuid.UUID) ([]models.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return acct.Statements, nil
}

// accrueAccount folds any income due into the account. Caller holds the lock
// and is responsible for saving.
func (s *SavingsAccountService) accrueAccount(acct *models.Account) {
	res := accrue(acct.Balance, acct.LastTransaction, s.now())
	acct.Balance = res.balance
	acct.LastTransaction = res.lastTransaction
	acct.Statements = append(acct.Statements, res.statements...)
}

func (s *SavingsAccountService) find(id uuid.UUID) (*models.Account, error) {
	if id == uuid.Nil {
		return nil, ErrAccountNotFound
	}
	return s.repo.Find(id)
}
