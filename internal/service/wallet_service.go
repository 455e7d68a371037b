package service

import (
	"context"

	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/repository"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// PurchaseStatus answers whether a user bought a listing.
type PurchaseStatus struct {
	ListingID string                 `json:"listing_id"`
	Purchased bool                   `json:"purchased"`
	Status    *domain.PurchaseStatus `json:"status,omitempty"`
}

// WalletService backs the wallet display and purchase checks.
type WalletService struct {
	wallets repository.WalletRepository
}

// NewWalletService constructs the service.
func NewWalletService(wallets repository.WalletRepository) *WalletService {
	return &WalletService{wallets: wallets}
}

// Wallet returns the caller's balance.
func (s *WalletService) Wallet(ctx context.Context, owner domain.Identity) (_ *domain.Wallet, err error) {
	ctx, span := startSpan(ctx, "WalletService.Wallet")
	defer func() { endSpan(span, err) }()

	wallet, err := s.wallets.GetByUser(ctx, owner.ID)
	if err != nil {
		return nil, lookupError("wallet", owner.ID, err)
	}
	return wallet, nil
}

// PurchaseStatus reports the buyer's latest purchase of listingID.
func (s *WalletService) PurchaseStatus(ctx context.Context, buyer domain.Identity, listingID string) (*PurchaseStatus, error) {
	if err := requireUUID("listing", listingID); err != nil {
		return nil, err
	}
	purchase, err := s.wallets.LatestPurchase(ctx, buyer.ID, listingID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &PurchaseStatus{ListingID: listingID}, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	status := purchase.Status
	return &PurchaseStatus{
		ListingID: listingID,
		Purchased: status == domain.PurchaseStatusCompleted,
		Status:    &status,
	}, nil
}
