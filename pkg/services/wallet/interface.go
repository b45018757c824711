package wallet

import (
	"context"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet_service
type WalletService interface {
	GetOrCreateWallet(ctx context.Context, userID string) (*entities.Wallet, bool, error)
	ResetIfBroke(ctx context.Context, userID string) (*entities.Wallet, bool, error)
	RecordRound(ctx context.Context, userID, roundID string, staked, payout entities.Money) (*entities.Wallet, error)
}
