package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/ledger"
	"github.com/harborbank/ledger-service/internal/models"
)

// PostgresAccountRepository persists accounts and their statements in
// PostgreSQL. Each instance is scoped to one account kind, mirroring the
// per-kind stores the services expect: a credit repository never returns a
// savings account even though both kinds share the tables.
//
// Statements are append-only rows keyed by a dense per-account sequence; Save
// writes only the tail the account gained since it was loaded.
type PostgresAccountRepository struct {
	db          *sql.DB
	accountType models.AccountType
}

func NewPostgresAccountRepository(db *sql.DB, accountType models.AccountType) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db, accountType: accountType}
}

func (r *PostgresAccountRepository) Find(id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, account_type, owner_name, owner_cpf, balance,
		       last_transaction, last_withdraw, withdraw_count, last_transfer, transfer_count
		FROM accounts
		WHERE id = $1 AND account_type = $2
	`
	var acct models.Account
	var lastTransaction, lastWithdraw, lastTransfer sql.NullTime
	err := r.db.QueryRow(query, id, r.accountType).Scan(
		&acct.ID, &acct.Type, &acct.Owner.Name, &acct.Owner.CPF, &acct.Balance,
		&lastTransaction, &lastWithdraw, &acct.WithdrawCount, &lastTransfer, &acct.TransferCount,
	)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	acct.LastTransaction = lastTransaction.Time
	acct.LastWithdraw = lastWithdraw.Time
	acct.LastTransfer = lastTransfer.Time

	rows, err := r.db.Query(
		`SELECT recorded_at, amount, kind FROM account_statements WHERE account_id = $1 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st models.Statement
		if err := rows.Scan(&st.Date, &st.Amount, &st.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		acct.Statements = append(acct.Statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}

	return &acct, nil
}

func (r *PostgresAccountRepository) Save(acct *models.Account) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO accounts (id, account_type, owner_name, owner_cpf, balance,
		                      last_transaction, last_withdraw, withdraw_count, last_transfer, transfer_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			balance = EXCLUDED.balance,
			last_transaction = EXCLUDED.last_transaction,
			last_withdraw = EXCLUDED.last_withdraw,
			withdraw_count = EXCLUDED.withdraw_count,
			last_transfer = EXCLUDED.last_transfer,
			transfer_count = EXCLUDED.transfer_count
	`,
		acct.ID, acct.Type, acct.Owner.Name, acct.Owner.CPF, acct.Balance,
		nullTime(acct.LastTransaction), nullTime(acct.LastWithdraw),
		acct.WithdrawCount, nullTime(acct.LastTransfer), acct.TransferCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	var stored int64
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM account_statements WHERE account_id = $1`, acct.ID,
	).Scan(&stored); err != nil {
		return fmt.Errorf("failed to count statements: %w", err)
	}

	for i := stored; i < int64(len(acct.Statements)); i++ {
		st := acct.Statements[i]
		_, err := tx.Exec(
			`INSERT INTO account_statements (account_id, seq, recorded_at, amount, kind) VALUES ($1, $2, $3, $4, $5)`,
			acct.ID, i+1, st.Date, st.Amount, st.Kind,
		)
		if err != nil {
			return fmt.Errorf("failed to append statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) Delete(id uuid.UUID) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM account_statements WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete statements: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM accounts WHERE id = $1 AND account_type = $2`, id, r.accountType)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ledger.ErrAccountNotFound
	}

	return tx.Commit()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
