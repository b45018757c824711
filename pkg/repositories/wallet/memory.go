package wallet

import (
	"context"
	"sync"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	wallets      map[string]*entities.Wallet
	transactions map[string][]*entities.Transaction
	mu           sync.RWMutex
}

// NewMemoryRepository creates a new in-memory wallet repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wallets:      make(map[string]*entities.Wallet),
		transactions: make(map[string][]*entities.Transaction),
	}
}

// GetWallet retrieves a wallet by user ID
func (r *MemoryRepository) GetWallet(ctx context.Context, userID string) (*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallet, exists := r.wallets[userID]
	if !exists {
		return nil, ErrWalletNotFound
	}

	// Return a copy to prevent concurrent modification
	walletCopy := *wallet
	return &walletCopy, nil
}

// SaveWallet creates or updates a wallet
func (r *MemoryRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	walletCopy := *wallet
	r.wallets[wallet.UserID] = &walletCopy
	return nil
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.wallets[transaction.UserID]; !exists {
		return ErrWalletNotFound
	}

	txCopy := *transaction
	r.transactions[transaction.UserID] = append(r.transactions[transaction.UserID], &txCopy)
	return nil
}

// GetTransactions retrieves recent transactions for a user
func (r *MemoryRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	return r.filter(userID, limit, func(*entities.Transaction) bool { return true }), nil
}

// GetTransactionsByType retrieves transactions of a specific type
func (r *MemoryRepository) GetTransactionsByType(ctx context.Context, userID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	return r.filter(userID, limit, func(tx *entities.Transaction) bool { return tx.Type == transactionType }), nil
}

func (r *MemoryRepository) filter(userID string, limit int, match func(*entities.Transaction) bool) []*entities.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.transactions[userID]
	out := []*entities.Transaction{}
	for i := len(all) - 1; i >= 0; i-- {
		if !match(all[i]) {
			continue
		}
		txCopy := *all[i]
		out = append(out, &txCopy)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
