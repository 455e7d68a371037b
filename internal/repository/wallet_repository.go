package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamerhub/marketplace/internal/domain"
)

// WalletRepository reads balances and purchase records.
type WalletRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Wallet, error)
	LatestPurchase(ctx context.Context, buyerID, listingID string) (*domain.Purchase, error)
}

type walletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository instantiates repository.
func NewWalletRepository(pool *pgxpool.Pool) WalletRepository {
	return &walletRepository{pool: pool}
}

func (r *walletRepository) GetByUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	const query = `
        SELECT user_id, balance_cents, pending_cents, currency, updated_at
        FROM wallets WHERE user_id=$1`
	var wallet domain.Wallet
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.BalanceCents,
		&wallet.PendingCents,
		&wallet.Currency,
		&wallet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) LatestPurchase(ctx context.Context, buyerID, listingID string) (*domain.Purchase, error) {
	const query = `
        SELECT id, listing_id, buyer_id, price_cents, status, created_at
        FROM purchases WHERE buyer_id=$1 AND listing_id=$2
        ORDER BY created_at DESC LIMIT 1`
	var p domain.Purchase
	if err := r.pool.QueryRow(ctx, query, buyerID, listingID).Scan(
		&p.ID,
		&p.ListingID,
		&p.BuyerID,
		&p.PriceCents,
		&p.Status,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
