package repository

import (
	"database/sql"
	"fmt"
)

// Migrate creates the account tables if they do not exist. Intended for
// local and test environments; production schemas are managed externally.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			account_type TEXT NOT NULL,
			owner_name TEXT NOT NULL,
			owner_cpf TEXT NOT NULL,
			balance NUMERIC NOT NULL DEFAULT 0,
			last_transaction TIMESTAMPTZ,
			last_withdraw TIMESTAMPTZ,
			withdraw_count BIGINT NOT NULL DEFAULT 0,
			last_transfer TIMESTAMPTZ,
			transfer_count BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS account_statements (
			account_id UUID NOT NULL REFERENCES accounts(id),
			seq BIGINT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			amount NUMERIC NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (account_id, seq)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
