package wallet

import (
	"context"
	"errors"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

var ErrWalletNotFound = errors.New("wallet not found")

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet

// Repository defines the interface for wallet data operations
type Repository interface {
	// GetWallet retrieves a wallet by user ID
	GetWallet(ctx context.Context, userID string) (*entities.Wallet, error)

	// SaveWallet creates or updates a wallet
	SaveWallet(ctx context.Context, wallet *entities.Wallet) error

	// AddTransaction records a new transaction
	AddTransaction(ctx context.Context, transaction *entities.Transaction) error

	// GetTransactions retrieves recent transactions for a user, newest first
	GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error)

	// GetTransactionsByType retrieves transactions of a specific type, newest first
	GetTransactionsByType(ctx context.Context, userID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error)

	// Close releases any resources held by the repository
	Close() error
}
