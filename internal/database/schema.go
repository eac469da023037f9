package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schema is applied in order on startup. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		phone VARCHAR(15) NOT NULL UNIQUE,
		name VARCHAR(80) NOT NULL,
		team_code VARCHAR(12) NOT NULL UNIQUE,
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		city VARCHAR(60) NOT NULL,
		sport VARCHAR(40) NOT NULL,
		format VARCHAR(10) NOT NULL CHECK (format IN ('Singles', 'Doubles')),
		draw_size INT NOT NULL CHECK (draw_size > 0 AND draw_size % 4 = 0),
		status VARCHAR(12) NOT NULL DEFAULT 'Open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (name, city, sport)
	)`,
	`CREATE TABLE IF NOT EXISTS tournament_categories (
		tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
		position INT NOT NULL,
		name VARCHAR(60) NOT NULL,
		entry_fee BIGINT NOT NULL CHECK (entry_fee >= 0),
		per_match_bonus BIGINT NOT NULL CHECK (per_match_bonus >= 0),
		first_prize BIGINT NOT NULL CHECK (first_prize >= 0),
		second_prize BIGINT NOT NULL CHECK (second_prize >= 0),
		third_prize BIGINT NOT NULL CHECK (third_prize >= 0),
		PRIMARY KEY (tournament_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id),
		partner_account_id BIGINT REFERENCES accounts(id),
		tournament_id BIGINT NOT NULL REFERENCES tournaments(id),
		city VARCHAR(60) NOT NULL,
		category VARCHAR(60) NOT NULL,
		group_label VARCHAR(2),
		status VARCHAR(20) NOT NULL,
		pair_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (account_id, tournament_id, city)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_registrations_scope ON registrations (tournament_id, city, category, status)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id BIGSERIAL PRIMARY KEY,
		tournament_id BIGINT NOT NULL REFERENCES tournaments(id),
		city VARCHAR(60) NOT NULL,
		category VARCHAR(60) NOT NULL,
		group_label VARCHAR(2) NOT NULL DEFAULT '',
		stage VARCHAR(20) NOT NULL,
		side1_label TEXT NOT NULL,
		side1_primary BIGINT NOT NULL REFERENCES accounts(id),
		side1_primary_code VARCHAR(12) NOT NULL,
		side1_partner BIGINT REFERENCES accounts(id),
		side1_partner_code VARCHAR(12),
		side2_label TEXT NOT NULL,
		side2_primary BIGINT NOT NULL REFERENCES accounts(id),
		side2_primary_code VARCHAR(12) NOT NULL,
		side2_partner BIGINT REFERENCES accounts(id),
		side2_partner_code VARCHAR(12),
		score TEXT NOT NULL DEFAULT '',
		status VARCHAR(24) NOT NULL DEFAULT 'Scheduled',
		submitted_by VARCHAR(12) NOT NULL DEFAULT '',
		scheduled_at TIMESTAMPTZ,
		payout_applied BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_status_schedule ON matches (status, scheduled_at)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		reference VARCHAR(64) NOT NULL UNIQUE,
		account_id BIGINT NOT NULL REFERENCES accounts(id),
		amount BIGINT NOT NULL,
		type VARCHAR(6) NOT NULL,
		mode VARCHAR(20) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(10) NOT NULL DEFAULT 'COMPLETED',
		tournament_id BIGINT,
		match_id BIGINT,
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		balance_after BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_tournament ON transactions (tournament_id) WHERE tournament_id IS NOT NULL`,
}

// Migrate applies the schema inside one transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	log.Printf("[DB] schema up to date (%d statements)", len(schema))
	return nil
}
