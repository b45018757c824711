package wallet

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) Repository
	repo    Repository
	ctx     context.Context
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) Repository {
		return NewMemoryRepository()
	}})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) Repository {
		db, err := game.OpenSQLite(filepath.Join(t.TempDir(), "wallet.db"))
		if err != nil {
			t.Fatalf("failed to open sqlite database: %v", err)
		}
		return NewSQLiteRepository(db)
	}})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.NoError(s.repo.Close())
}

func transaction(id, userID string, amount entities.Money, txType entities.TransactionType, minutes int) *entities.Transaction {
	return &entities.Transaction{
		ID:           id,
		UserID:       userID,
		Amount:       amount,
		Type:         txType,
		ReferenceID:  "round-" + id,
		Description:  string(txType),
		Timestamp:    baseTime.Add(time.Duration(minutes) * time.Minute),
		BalanceAfter: entities.Dollars(1000) + amount,
	}
}

func (s *RepositoryTestSuite) TestGetWalletNotFound() {
	wallet, err := s.repo.GetWallet(s.ctx, "nobody")
	s.ErrorIs(err, ErrWalletNotFound)
	s.Nil(wallet)
}

func (s *RepositoryTestSuite) TestSaveAndGetWallet() {
	s.Require().NoError(s.repo.SaveWallet(s.ctx, &entities.Wallet{
		UserID:      "player1",
		Balance:     entities.Dollars(1000),
		LastUpdated: baseTime,
	}))

	wallet, err := s.repo.GetWallet(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal("player1", wallet.UserID)
	s.Equal(entities.Dollars(1000), wallet.Balance)
	s.True(baseTime.Equal(wallet.LastUpdated))

	wallet.Balance = entities.Dollars(1050) + 50
	wallet.LastUpdated = baseTime.Add(time.Minute)
	s.Require().NoError(s.repo.SaveWallet(s.ctx, wallet))

	updated, err := s.repo.GetWallet(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(entities.Money(105050), updated.Balance)
	s.True(baseTime.Add(time.Minute).Equal(updated.LastUpdated))
}

func (s *RepositoryTestSuite) TestWalletIsCopied() {
	wallet := &entities.Wallet{UserID: "player1", Balance: entities.Dollars(1000), LastUpdated: baseTime}
	s.Require().NoError(s.repo.SaveWallet(s.ctx, wallet))
	wallet.Balance = 0

	stored, err := s.repo.GetWallet(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(entities.Dollars(1000), stored.Balance)
}

func (s *RepositoryTestSuite) TestAddTransactionRequiresWallet() {
	err := s.repo.AddTransaction(s.ctx, transaction("t1", "nobody", -entities.Dollars(25), entities.TransactionTypeBet, 0))
	s.ErrorIs(err, ErrWalletNotFound)
}

func (s *RepositoryTestSuite) TestTransactions() {
	s.Require().NoError(s.repo.SaveWallet(s.ctx, &entities.Wallet{UserID: "player1", Balance: entities.Dollars(1000), LastUpdated: baseTime}))
	s.Require().NoError(s.repo.SaveWallet(s.ctx, &entities.Wallet{UserID: "player2", Balance: entities.Dollars(1000), LastUpdated: baseTime}))

	s.Require().NoError(s.repo.AddTransaction(s.ctx, transaction("t1", "player1", -entities.Dollars(25), entities.TransactionTypeBet, 1)))
	s.Require().NoError(s.repo.AddTransaction(s.ctx, transaction("t2", "player1", entities.Dollars(50), entities.TransactionTypePayout, 2)))
	s.Require().NoError(s.repo.AddTransaction(s.ctx, transaction("t3", "player1", -entities.Dollars(100), entities.TransactionTypeBet, 3)))
	s.Require().NoError(s.repo.AddTransaction(s.ctx, transaction("t4", "player2", -entities.Dollars(25), entities.TransactionTypeBet, 4)))

	s.Run("newest first", func() {
		txs, err := s.repo.GetTransactions(s.ctx, "player1", 0)
		s.Require().NoError(err)
		s.Require().Len(txs, 3)
		s.Equal("t3", txs[0].ID)
		s.Equal("t2", txs[1].ID)
		s.Equal("t1", txs[2].ID)

		s.Equal(-entities.Dollars(100), txs[0].Amount)
		s.Equal(entities.TransactionTypeBet, txs[0].Type)
		s.Equal("round-t3", txs[0].ReferenceID)
		s.True(baseTime.Add(3 * time.Minute).Equal(txs[0].Timestamp))
		s.Equal(entities.Dollars(900), txs[0].BalanceAfter)
	})

	s.Run("limit", func() {
		txs, err := s.repo.GetTransactions(s.ctx, "player1", 2)
		s.Require().NoError(err)
		s.Require().Len(txs, 2)
		s.Equal("t3", txs[0].ID)
	})

	s.Run("by type", func() {
		txs, err := s.repo.GetTransactionsByType(s.ctx, "player1", entities.TransactionTypeBet, 10)
		s.Require().NoError(err)
		s.Require().Len(txs, 2)
		s.Equal("t3", txs[0].ID)
		s.Equal("t1", txs[1].ID)
	})

	s.Run("unknown user", func() {
		txs, err := s.repo.GetTransactions(s.ctx, "nobody", 10)
		s.Require().NoError(err)
		s.Empty(txs)
	})
}
