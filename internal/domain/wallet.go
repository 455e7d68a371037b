package domain

import "time"

// Wallet holds a user's marketplace balance in cents.
type Wallet struct {
	UserID       string
	BalanceCents int64
	PendingCents int64
	Currency     string
	UpdatedAt    time.Time
}

// PurchaseStatus tracks an order for a listing.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusRefunded  PurchaseStatus = "REFUNDED"
)

// Purchase links a buyer to a listing.
type Purchase struct {
	ID         string
	ListingID  string
	BuyerID    string
	PriceCents int64
	Status     PurchaseStatus
	CreatedAt  time.Time
}
