package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial dataset cache schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					customer_number TEXT,
					name TEXT NOT NULL,
					surname TEXT NOT NULL,
					email TEXT,
					phone TEXT,
					address TEXT,
					city TEXT,
					gender TEXT,
					birth_date TEXT,
					profession TEXT,
					created_at TEXT,
					updated_at TEXT
				)`,

				`CREATE TABLE IF NOT EXISTS credit_cards (
					assign_no TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					customer_number TEXT,
					card_name TEXT,
					product_code TEXT,
					card_limit REAL NOT NULL DEFAULT 0,
					available_limit REAL NOT NULL DEFAULT 0,
					available_cash_limit REAL NOT NULL DEFAULT 0,
					points REAL NOT NULL DEFAULT 0,
					statement_date TEXT,
					statement_due_date TEXT,
					statement_amount REAL NOT NULL DEFAULT 0,
					statement_min_amount REAL NOT NULL DEFAULT 0,
					can_make_limit_change_request INTEGER NOT NULL DEFAULT 0,
					is_sup_card_usage_increase_allowed INTEGER NOT NULL DEFAULT 0,
					is_auto_payment_available INTEGER NOT NULL DEFAULT 0,
					is_active INTEGER NOT NULL DEFAULT 0,
					remaining_statement_amount REAL NOT NULL DEFAULT 0,
					remaining_statement_min_amount REAL NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX IF NOT EXISTS idx_credit_cards_user ON credit_cards(user_id)`,

				`CREATE TABLE IF NOT EXISTS card_transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					group_assign_no TEXT NOT NULL,
					seq INTEGER NOT NULL,
					assign_no TEXT,
					amount REAL NOT NULL DEFAULT 0,
					description TEXT,
					txn_date TEXT,
					can_post_installment INTEGER NOT NULL DEFAULT 0,
					debt_or_credit TEXT,
					foreign_currency_amount REAL NOT NULL DEFAULT 0,
					authorization_code TEXT,
					merchant_category_code TEXT,
					reward_points REAL NOT NULL DEFAULT 0,
					transaction_id TEXT,
					transaction_type TEXT,
					processing_stage TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_card_transactions_group ON card_transactions(group_assign_no, seq)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the cache database up to the expected schema version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
