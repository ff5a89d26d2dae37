package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/models"
)

// CreditAccountService owns the transactional account kind. Same-day
// withdrawals get progressively more expensive through the shared fee table;
// transfer legs are fee-free here because the orchestrator prices transfers.
//
// All read-modify-write cycles are serialized behind one mutex so the
// balance/statement invariant survives concurrent callers.
type CreditAccountService struct {
	mu        sync.Mutex
	repo      AccountRepository
	publisher EventPublisher
	now       func() time.Time
}

func NewCreditAccountService(repo AccountRepository, publisher EventPublisher) *CreditAccountService {
	return &CreditAccountService{repo: repo, publisher: publisher, now: time.Now}
}

// validateDraft rejects any creation input that is not an empty account of
// the expected kind with a complete owner.
func validateDraft(draft *models.Account, want models.AccountType) error {
	if draft.Type != want {
		return fmt.Errorf("%w: invalid account type %q", ErrInvalidAccount, draft.Type)
	}
	if !draft.Balance.IsZero() {
		return fmt.Errorf("%w: cannot create account with balance %s", ErrInvalidAccount, draft.Balance)
	}
	if len(draft.Statements) != 0 {
		return fmt.Errorf("%w: cannot create account with statements", ErrInvalidAccount)
	}
	if draft.Owner.Name == "" || draft.Owner.CPF == "" {
		return fmt.Errorf("%w: cannot create account without owner", ErrInvalidAccount)
	}
	return nil
}

func (s *CreditAccountService) CreateAccount(draft models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDraft(&draft, models.Credit); err != nil {
		return nil, err
	}

	draft.ID = uuid.New()
	draft.Balance = decimal.Zero
	if err := s.repo.Save(&draft); err != nil {
		return nil, err
	}

	emitAccountCreated(s.publisher, &draft)
	return &draft, nil
}

func (s *CreditAccountService) GetAccount(id uuid.UUID) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *CreditAccountService) GetBalance(id uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

func (s *CreditAccountService) Deposit(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot deposit non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	acct.Balance = acct.Balance.Add(amount)
	st := models.Statement{Date: s.now(), Amount: amount, Kind: models.Deposit}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// DepositForTransfer credits the incoming leg of a transfer. The statement is
// recorded at the orchestrator's timestamp so both legs share one instant.
func (s *CreditAccountService) DepositForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot deposit non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	acct.Balance = acct.Balance.Add(amount)
	st := models.Statement{Date: transferTime, Amount: amount, Kind: models.Transfer}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// Withdraw debits the account, applying the same-day fee table: the date of
// the last withdrawal and a same-day counter decide the multiplier. A first
// withdrawal of the day resets the counter and is always fee-free. The fee is
// absorbed into the balance delta; the statement shows the requested amount.
func (s *CreditAccountService) Withdraw(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	now := s.now()
	debit := amount
	count := int64(1)
	if !acct.LastWithdraw.IsZero() && sameDay(acct.LastWithdraw, now) {
		debit = amount.Mul(sameDayFee(acct.WithdrawCount))
		count = acct.WithdrawCount + 1
	}

	final := acct.Balance.Sub(debit)
	if final.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw more than current balance", ErrInvalidTransaction)
	}

	acct.Balance = final
	acct.WithdrawCount = count
	acct.LastWithdraw = dateOf(now)
	st := models.Statement{Date: now, Amount: amount.Neg(), Kind: models.Withdraw}
	acct.AddStatement(st)

	if err := s.repo.Save(acct); err != nil {
		return decimal.Zero, err
	}
	emitTransaction(s.publisher, acct, st)
	return acct.Balance, nil
}

// WithdrawForTransfer debits the outgoing leg of a transfer at exactly the
// given amount; transfer fees are the orchestrator's responsibility. It still
// maintains the account's transfer bookkeeping, mirroring the savings
// variant, even though no fee rule consults it on credit accounts.
func (s *CreditAccountService) WithdrawForTransfer(amount decimal.Decimal, id uuid.UUID, transferTime time.Time) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cannot withdraw non-positive value", ErrInvalidTransaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return decimal.Zero, err
	}

	final := acct.Balance.Sub(amount)
	if final.IsNegative() {
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

func (s *CreditAccountService) GetStatement(id uuid.UUID) ([]models.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return acct.Statements, nil
}

func (s *CreditAccountService) find(id uuid.UUID) (*models.Account, error) {
	if id == uuid.Nil {
		return nil, ErrAccountNotFound
	}
	return s.repo.Find(id)
}
