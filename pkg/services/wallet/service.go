package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	walletRepo "github.com/fadedpez/tucotrainer/pkg/repositories/wallet"
	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("amount must be positive")
)

// Service handles wallet business logic
type Service struct {
	repo            walletRepo.Repository
	startingBalance entities.Money
	clock           quartz.Clock

	// Serializes read-modify-write cycles on wallets
	mu sync.Mutex
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the clock used to timestamp wallets and transactions
func WithClock(clock quartz.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a new wallet service. New and reset wallets receive
// startingBalance.
func NewService(repo walletRepo.Repository, startingBalance entities.Money, opts ...Option) *Service {
	s := &Service{
		repo:            repo,
		startingBalance: startingBalance,
		clock:           quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartingBalance returns the balance new and reset wallets receive
func (s *Service) StartingBalance() entities.Money {
	return s.startingBalance
}

// GetOrCreateWallet retrieves a wallet or creates a new one if it doesn't exist
func (s *Service) GetOrCreateWallet(ctx context.Context, userID string) (*entities.Wallet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreate(ctx, userID)
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (*entities.Wallet, bool, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err == nil {
		return wallet, false, nil
	}
	if !errors.Is(err, walletRepo.ErrWalletNotFound) {
		return nil, false, err
	}

	newWallet := &entities.Wallet{
		UserID:      userID,
		Balance:     s.startingBalance,
		LastUpdated: s.clock.Now(),
	}
	if err := s.repo.SaveWallet(ctx, newWallet); err != nil {
		return nil, false, err
	}

	log.Printf("[WALLET] Created wallet for user %s with balance %s", userID, newWallet.Balance)
	return newWallet, true, nil
}

// GetBalance returns the current balance for a user
func (s *Service) GetBalance(ctx context.Context, userID string) (entities.Money, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// AddFunds adds funds to a user's wallet and records the transaction
func (s *Service) AddFunds(ctx context.Context, userID string, amount entities.Money, txType entities.TransactionType, referenceID, description string) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, userID, amount, txType, referenceID, description)
}

// RemoveFunds removes funds from a user's wallet if sufficient funds exist
func (s *Service) RemoveFunds(ctx context.Context, userID string, amount entities.Money, txType entities.TransactionType, referenceID, description string) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, userID, -amount, txType, referenceID, description)
}

// apply changes the balance by delta and records the transaction. Callers
// hold s.mu.
func (s *Service) apply(ctx context.Context, userID string, delta entities.Money, txType entities.TransactionType, referenceID, description string) (*entities.Transaction, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		log.Printf("[WALLET] Error getting wallet for user %s: %v", userID, err)
		return nil, err
	}

	if wallet.Balance+delta < 0 {
		return nil, ErrInsufficientFunds
	}

	now := s.clock.Now()
	wallet.Balance += delta
	wallet.LastUpdated = now
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		log.Printf("[WALLET] Error saving wallet for user %s: %v", userID, err)
		return nil, err
	}

	transaction := &entities.Transaction{
		ID:           uuid.New().String(),
		UserID:       userID,
		Amount:       delta,
		Type:         txType,
		ReferenceID:  referenceID,
		Description:  description,
		Timestamp:    now,
		BalanceAfter: wallet.Balance,
	}
	if err := s.repo.AddTransaction(ctx, transaction); err != nil {
		log.Printf("[WALLET] Error adding transaction for user %s: %v", userID, err)
		return nil, err
	}

	log.Printf("[WALLET] %s %s for user %s, balance now %s", txType, delta, userID, wallet.Balance)
	return transaction, nil
}

// ResetIfBroke restores the starting balance when the user has nothing left.
// It reports whether a reset happened.
func (s *Service) ResetIfBroke(ctx context.Context, userID string) (*entities.Wallet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, _, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if wallet.Balance > 0 {
		return wallet, false, nil
	}

	if _, err := s.apply(ctx, userID, s.startingBalance-wallet.Balance, entities.TransactionTypeReset, "", "Bankroll reset"); err != nil {
		return nil, false, err
	}

	wallet, err = s.repo.GetWallet(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return wallet, true, nil
}

// RecordRound books a finished round: the total stake as a bet and any payout
func (s *Service) RecordRound(ctx context.Context, userID, roundID string, staked, payout entities.Money) (*entities.Wallet, error) {
	if staked <= 0 || payout < 0 {
		return nil, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.apply(ctx, userID, -staked, entities.TransactionTypeBet, roundID, fmt.Sprintf("Bet %s", staked)); err != nil {
		return nil, err
	}
	if payout > 0 {
		if _, err := s.apply(ctx, userID, payout, entities.TransactionTypePayout, roundID, fmt.Sprintf("Payout %s", payout)); err != nil {
			return nil, err
		}
	}

	return s.repo.GetWallet(ctx, userID)
}

// GetTransactions returns the user's most recent transactions
func (s *Service) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, limit)
}
