package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const selectTransactionColumns = `id, user_id, amount, type, reference_id, description, timestamp, balance_after`

// SQLiteRepository implements Repository using SQLite. The schema comes from
// the shared migrations, so the database must be opened with game.OpenSQLite
// or migrated beforehand.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an already migrated database
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetWallet retrieves a wallet by user ID
func (r *SQLiteRepository) GetWallet(ctx context.Context, userID string) (*entities.Wallet, error) {
	var (
		wallet  entities.Wallet
		balance int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = ?`, userID).
		Scan(&wallet.UserID, &balance, &wallet.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("error getting wallet: %w", err)
	}
	wallet.Balance = entities.Money(balance)
	return &wallet, nil
}

// SaveWallet creates or updates a wallet
func (r *SQLiteRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			balance = excluded.balance,
			updated_at = excluded.updated_at`,
		wallet.UserID, int64(wallet.Balance), wallet.LastUpdated.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving wallet: %w", err)
	}
	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (`+selectTransactionColumns+`)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM wallets WHERE user_id = ?)`,
		transaction.ID, transaction.UserID, int64(transaction.Amount), string(transaction.Type),
		transaction.ReferenceID, transaction.Description, transaction.Timestamp.UTC(),
		int64(transaction.BalanceAfter), transaction.UserID,
	)
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}
	if affected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// GetTransactions retrieves recent transactions for a user
func (r *SQLiteRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	return r.query(ctx, `WHERE user_id = ?`, limit, userID)
}

// GetTransactionsByType retrieves transactions of a specific type
func (r *SQLiteRepository) GetTransactionsByType(ctx context.Context, userID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	return r.query(ctx, `WHERE user_id = ? AND type = ?`, limit, userID, string(transactionType))
}

func (r *SQLiteRepository) query(ctx context.Context, where string, limit int, args ...any) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, `SELECT `+selectTransactionColumns+` FROM transactions `+
		where+` ORDER BY timestamp DESC, rowid DESC LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*entities.Transaction{}
	for rows.Next() {
		var (
			tx            entities.Transaction
			amount, after int64
			txType        string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &amount, &txType, &tx.ReferenceID,
			&tx.Description, &tx.Timestamp, &after); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		tx.Amount = entities.Money(amount)
		tx.BalanceAfter = entities.Money(after)
		tx.Type = entities.TransactionType(txType)
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
