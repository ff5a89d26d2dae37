package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/models"
)

func newSavingsFixture() (*SavingsAccountService, *stubRepo) {
	repo := newStubRepo()
	svc := NewSavingsAccountService(repo, nil)
	svc.now = fixedClock(testTime)
	return svc, repo
}

func mustCreateSavings(t *testing.T, svc *SavingsAccountService, owner models.Owner) uuid.UUID {
	t.Helper()
	acct, err := svc.CreateAccount(models.Account{Type: models.Saving, Owner: owner})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return acct.ID
}

func TestSavingsCreateAccount(t *testing.T) {
	svc, _ := newSavingsFixture()

	acct, err := svc.CreateAccount(models.Account{Type: models.Saving, Owner: anOwner()})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if !acct.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", acct.Balance)
	}
	// The accrual watermark starts at creation time, not at first deposit.
	if !acct.LastTransaction.Equal(testTime) {
		t.Errorf("last transaction = %v, want %v", acct.LastTransaction, testTime)
	}
}

func TestSavingsCreateAccountRejectsWrongType(t *testing.T) {
	svc, _ := newSavingsFixture()
	if _, err := svc.CreateAccount(models.Account{Type: models.Credit, Owner: anOwner()}); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("err = %v, want ErrInvalidAccount", err)
	}
}

// A deposit of 10 followed by two idle minutes yields 14.884: 10 earns 2.2
// after the first minute, 12.2 earns 2.684 after the second.
func TestSavingsBalanceAccruesIncome(t *testing.T) {
	svc, repo := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())
	if _, err := svc.Deposit(decimal.NewFromInt(10), id); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	svc.now = fixedClock(testTime.Add(2 * time.Minute))
	balance, err := svc.GetBalance(id)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance.String() != "14.884" {
		t.Errorf("balance = %s, want 14.884", balance)
	}

	acct := repo.accounts[id]
	if len(acct.Statements) != 3 {
		t.Fatalf("statements = %d, want deposit + 2 income", len(acct.Statements))
	}
	wantIncomes := []string{"2.2", "2.684"}
	for i, st := range acct.Statements[1:] {
		if st.Kind != models.Income || st.Amount.String() != wantIncomes[i] {
			t.Errorf("statement %d = %+v, want INCOME of %s", i+1, st, wantIncomes[i])
		}
	}

	// Reading again without any elapsed time changes nothing.
	balance, err = svc.GetBalance(id)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance.String() != "14.884" {
		t.Errorf("second read balance = %s, want 14.884", balance)
	}
	if len(repo.accounts[id].Statements) != 3 {
		t.Errorf("second read appended statements")
	}
}

func TestSavingsAccrualKeepsSubMinuteRemainder(t *testing.T) {
	svc, repo := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())
	if _, err := svc.Deposit(decimal.NewFromInt(10), id); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	svc.now = fixedClock(testTime.Add(90 * time.Second))
	balance, err := svc.GetBalance(id)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance.String() != "12.2" {
		t.Errorf("balance = %s, want 12.2", balance)
	}
	if !repo.accounts[id].LastTransaction.Equal(testTime.Add(time.Minute)) {
		t.Errorf("watermark = %v, want %v", repo.accounts[id].LastTransaction, testTime.Add(time.Minute))
	}

	// The leftover 30 seconds complete into a second minute.
	svc.now = fixedClock(testTime.Add(2 * time.Minute))
	balance, err = svc.GetBalance(id)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance.String() != "14.884" {
		t.Errorf("balance = %s, want 14.884", balance)
	}
}

func TestSavingsWithdrawFlatFee(t *testing.T) {
	svc, _ := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())
	if _, err := svc.Deposit(decimal.NewFromInt(1000), id); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	balance, err := svc.Withdraw(decimal.NewFromInt(100), id)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if balance.String() != "898" {
		t.Errorf("balance = %s, want 898", balance)
	}

	// No same-day escalation on savings: a second withdrawal pays the same
	// flat fee.
	balance, err = svc.Withdraw(decimal.NewFromInt(100), id)
	if err != nil {
		t.Fatalf("second Withdraw: %v", err)
	}
	if balance.String() != "796" {
		t.Errorf("balance = %s, want 796", balance)
	}
}

func TestSavingsWithdrawRejectionKeepsAccrual(t *testing.T) {
	svc, repo := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())
	if _, err := svc.Deposit(decimal.NewFromInt(10), id); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	svc.now = fixedClock(testTime.Add(time.Minute))
	if _, err := svc.Withdraw(decimal.NewFromInt(100), id); !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("err = %v, want ErrInvalidTransaction", err)
	}

	acct := repo.accounts[id]
	if acct.Balance.String() != "12.2" {
		t.Errorf("balance = %s, want the accrued 12.2", acct.Balance)
	}
	if !acct.LastTransaction.Equal(testTime.Add(time.Minute)) {
		t.Errorf("watermark = %v, want %v", acct.LastTransaction, testTime.Add(time.Minute))
	}
	last := acct.Statements[len(acct.Statements)-1]
	if last.Kind != models.Income {
		t.Errorf("last statement = %+v, want the INCOME entry only", last)
	}
}

func TestSavingsTransferLegsAreFeeFree(t *testing.T) {
	svc, repo := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())
	if _, err := svc.Deposit(decimal.NewFromInt(1000), id); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	balance, err := svc.WithdrawForTransfer(decimal.NewFromInt(100), id, testTime)
	if err != nil {
		t.Fatalf("WithdrawForTransfer: %v", err)
	}
	if balance.String() != "900" {
		t.Errorf("balance = %s, want 900", balance)
	}

	acct := repo.accounts[id]
	if acct.TransferCount != 1 {
		t.Errorf("transfer count = %d, want 1", acct.TransferCount)
	}
	if !acct.LastTransfer.Equal(dateOf(testTime)) {
		t.Errorf("last transfer = %v, want %v", acct.LastTransfer, dateOf(testTime))
	}

	balance, err = svc.DepositForTransfer(decimal.NewFromInt(50), id, testTime)
	if err != nil {
		t.Fatalf("DepositForTransfer: %v", err)
	}
	if balance.String() != "950" {
		t.Errorf("balance = %s, want 950", balance)
	}
	st := repo.accounts[id].Statements[len(repo.accounts[id].Statements)-1]
	if st.Kind != models.Transfer || st.Amount.String() != "50" {
		t.Errorf("statement = %+v", st)
	}
}

func TestSavingsNonPositiveAmounts(t *testing.T) {
	svc, _ := newSavingsFixture()
	id := mustCreateSavings(t, svc, anOwner())

	if _, err := svc.Deposit(decimal.Zero, id); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Deposit err = %v, want ErrInvalidTransaction", err)
	}
	if _, err := svc.Withdraw(decimal.NewFromInt(-1), id); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Withdraw err = %v, want ErrInvalidTransaction", err)
	}
}

func TestSavingsAccountNotFound(t *testing.T) {
	svc, _ := newSavingsFixture()

	for _, id := range []uuid.UUID{uuid.Nil, uuid.New()} {
		if _, err := svc.GetBalance(id); !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("GetBalance(%s) err = %v, want ErrAccountNotFound", id, err)
		}
	}
}
