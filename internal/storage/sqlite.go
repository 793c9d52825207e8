// Package storage caches the raw datasets in SQLite so analyses can run
// without the upstream files present. Only raw data is stored; computed
// insights are always derived fresh.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/cardlens/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore holds the cached datasets in a single SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the cache database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceData atomically replaces the cached datasets with data. The
// optional progress callback fires once per card transaction group as it is
// written, for progress reporting during imports.
func (s *SQLiteStore) ReplaceData(ctx context.Context, data *model.RawData, progress func()) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"card_transactions", "credit_cards", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertUsers(ctx, tx, data.Users); err != nil {
		return err
	}
	if err := insertCreditCards(ctx, tx, data.CreditCards); err != nil {
		return err
	}
	if err := insertTransactions(ctx, tx, data.Transactions, progress); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func insertUsers(ctx context.Context, tx *sql.Tx, users []model.User) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO users (
			id, customer_number, name, surname, email, phone, address, city,
			gender, birth_date, profession, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare user insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range users {
		u := &users[i]
		if _, err := stmt.ExecContext(ctx,
			u.ID, u.CustomerNumber, u.Name, u.Surname, u.Email, u.Phone,
			u.Address, u.City, u.Gender, u.BirthDate, u.Profession,
			u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}
	return nil
}

func insertCreditCards(ctx context.Context, tx *sql.Tx, cards []model.CreditCard) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO credit_cards (
			user_id, customer_number, assign_no, card_name, product_code,
			card_limit, available_limit, available_cash_limit, points,
			statement_date, statement_due_date, statement_amount,
			statement_min_amount, can_make_limit_change_request,
			is_sup_card_usage_increase_allowed, is_auto_payment_available,
			is_active, remaining_statement_amount, remaining_statement_min_amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range cards {
		c := &cards[i]
		if _, err := stmt.ExecContext(ctx,
			c.UserID, c.CustomerNumber, c.AssignNo, c.CardName, c.ProductCode,
			c.Limit, c.AvailableLimit, c.AvailableCashLimit, c.Points,
			c.StatementDate, c.StatementDueDate, c.StatementAmount,
			c.StatementMinAmount, c.CanMakeLimitChangeRequest,
			c.IsSupCardUsageIncreaseAllowed, c.IsAutoPaymentAvailable,
			c.IsActive, c.RemainingStatementAmount, c.RemainingStatementMinAmount); err != nil {
			return fmt.Errorf("failed to insert card %s: %w", c.AssignNo, err)
		}
	}
	return nil
}

func insertTransactions(ctx context.Context, tx *sql.Tx, groups map[string][]model.Transaction, progress func()) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO card_transactions (
			group_assign_no, seq, assign_no, amount, description, txn_date,
			can_post_installment, debt_or_credit, foreign_currency_amount,
			authorization_code, merchant_category_code, reward_points,
			transaction_id, transaction_type, processing_stage
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for groupKey, group := range groups {
		for seq, txn := range group {
			if _, err := stmt.ExecContext(ctx,
				groupKey, seq, txn.AssignNo, txn.Amount, txn.Description,
				txn.Date, txn.CanPostInstallment, txn.DebtOrCredit,
				txn.ForeignCurrencyAmount, txn.AuthorizationCode,
				txn.MerchantCategoryCode, txn.RewardPoints,
				txn.TransactionID, txn.TransactionType, txn.ProcessingStage); err != nil {
				return fmt.Errorf("failed to insert transaction for card %s: %w", groupKey, err)
			}
		}
		if progress != nil {
			progress()
		}
	}
	return nil
}

// LoadData reads the complete cached datasets back out. Transaction groups
// come back in their original in-group order.
func (s *SQLiteStore) LoadData(ctx context.Context) (*model.RawData, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.loadCreditCards(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return &model.RawData{
		Users:        users,
		CreditCards:  cards,
		Transactions: transactions,
	}, nil
}

func (s *SQLiteStore) loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_number, name, surname, email, phone, address,
			city, gender, birth_date, profession, created_at, updated_at
		FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.CustomerNumber, &u.Name, &u.Surname,
			&u.Email, &u.Phone, &u.Address, &u.City, &u.Gender,
			&u.BirthDate, &u.Profession, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) loadCreditCards(ctx context.Context) ([]model.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, customer_number, assign_no, card_name, product_code,
			card_limit, available_limit, available_cash_limit, points,
			statement_date, statement_due_date, statement_amount,
			statement_min_amount, can_make_limit_change_request,
			is_sup_card_usage_increase_allowed, is_auto_payment_available,
			is_active, remaining_statement_amount, remaining_statement_min_amount
		FROM credit_cards ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit cards: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cards []model.CreditCard
	for rows.Next() {
		var c model.CreditCard
		if err := rows.Scan(&c.UserID, &c.CustomerNumber, &c.AssignNo,
			&c.CardName, &c.ProductCode, &c.Limit, &c.AvailableLimit,
			&c.AvailableCashLimit, &c.Points, &c.StatementDate,
			&c.StatementDueDate, &c.StatementAmount, &c.StatementMinAmount,
			&c.CanMakeLimitChangeRequest, &c.IsSupCardUsageIncreaseAllowed,
			&c.IsAutoPaymentAvailable, &c.IsActive,
			&c.RemainingStatementAmount, &c.RemainingStatementMinAmount); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *SQLiteStore) loadTransactions(ctx context.Context) (map[string][]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT group_assign_no, assign_no, amount, description, txn_date,
			can_post_installment, debt_or_credit, foreign_currency_amount,
			authorization_code, merchant_category_code, reward_points,
			transaction_id, transaction_type, processing_stage
		FROM card_transactions ORDER BY group_assign_no, seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	groups := make(map[string][]model.Transaction)
	for rows.Next() {
		var groupKey string
		var txn model.Transaction
		if err := rows.Scan(&groupKey, &txn.AssignNo, &txn.Amount,
			&txn.Description, &txn.Date, &txn.CanPostInstallment,
			&txn.DebtOrCredit, &txn.ForeignCurrencyAmount,
			&txn.AuthorizationCode, &txn.MerchantCategoryCode,
			&txn.RewardPoints, &txn.TransactionID, &txn.TransactionType,
			&txn.ProcessingStage); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		groups[groupKey] = append(groups[groupKey], txn)
	}
	return groups, rows.Err()
}
