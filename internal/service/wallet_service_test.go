package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/gamerhub/marketplace/internal/domain"
)

func TestWalletService(t *testing.T) {
	ctx := context.Background()
	listingID := "4a3c1f2e-1111-4000-8000-000000000001"
	repo := &fakeWallets{
		wallets: map[string]*domain.Wallet{"user-1": {UserID: "user-1", BalanceCents: 1234, Currency: "BRL"}},
		purchases: []domain.Purchase{
			{ID: "p1", BuyerID: "user-1", ListingID: listingID, Status: domain.PurchaseStatusCompleted},
		},
	}
	svc := NewWalletService(repo)

	wallet, err := svc.Wallet(ctx, domain.Identity{ID: "user-1"})
	if err != nil || wallet.BalanceCents != 1234 {
		t.Fatalf("Wallet: %+v %v", wallet, err)
	}
	if _, err := svc.Wallet(ctx, domain.Identity{ID: "user-2"}); statusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 for missing wallet, got %v", err)
	}

	status, err := svc.PurchaseStatus(ctx, domain.Identity{ID: "user-1"}, listingID)
	if err != nil || !status.Purchased {
		t.Fatalf("PurchaseStatus: %+v %v", status, err)
	}

	status, err = svc.PurchaseStatus(ctx, domain.Identity{ID: "user-2"}, listingID)
	if err != nil || status.Purchased || status.Status != nil {
		t.Fatalf("expected no purchase, got %+v %v", status, err)
	}
}
