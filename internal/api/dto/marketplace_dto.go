package dto

import (
	"time"

	"github.com/gamerhub/marketplace/internal/domain"
)

// ListingRequest payload for creating a listing.
type ListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Game        string  `json:"game"`
	Category    string  `json:"category"`
	PriceCents  int64   `json:"price_cents"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// ListingResponse is the public listing shape.
type ListingResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Game        string    `json:"game"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewListingResponse maps a domain listing.
func NewListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		SellerID:    l.SellerID,
		Title:       l.Title,
		Description: l.Description,
		Game:        l.Game,
		Category:    string(l.Category),
		PriceCents:  l.PriceCents,
		ImageURL:    l.ImageURL,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
	}
}

// BoostRequestPayload payload for opening a boosting request.
type BoostRequestPayload struct {
	Game        string `json:"game"`
	CurrentRank string `json:"current_rank"`
	TargetRank  string `json:"target_rank"`
	Notes       string `json:"notes"`
}

// BoostResponse is the public boosting request shape.
type BoostResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Game        string    `json:"game"`
	CurrentRank string    `json:"current_rank"`
	TargetRank  string    `json:"target_rank"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBoostResponse maps a domain boosting request.
func NewBoostResponse(b domain.BoostRequest) BoostResponse {
	return BoostResponse{
		ID:          b.ID,
		RequesterID: b.RequesterID,
		Game:        b.Game,
		CurrentRank: b.CurrentRank,
		TargetRank:  b.TargetRank,
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

// BidRequest payload for placing a bid.
type BidRequest struct {
	AmountCents    int64  `json:"amount_cents"`
	EstimatedHours int    `json:"estimated_hours"`
	Message        string `json:"message"`
}

// BidResponse is the public bid shape.
type BidResponse struct {
	ID             string    `json:"id"`
	BoostID        string    `json:"boost_id"`
	BidderID       string    `json:"bidder_id"`
	AmountCents    int64     `json:"amount_cents"`
	EstimatedHours int       `json:"estimated_hours"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBidResponse maps a domain bid.
func NewBidResponse(b domain.Bid) BidResponse {
	return BidResponse{
		ID:             b.ID,
		BoostID:        b.BoostID,
		BidderID:       b.BidderID,
		AmountCents:    b.AmountCents,
		EstimatedHours: b.EstimatedHours,
		Message:        b.Message,
		CreatedAt:      b.CreatedAt,
	}
}

// FeedbackRequest payload for reviewing a listing.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackResponse is the public review shape.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedbackResponse maps a domain review.
func NewFeedbackResponse(f domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		ListingID: f.ListingID,
		AuthorID:  f.AuthorID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

// WalletResponse is the wallet display shape.
type WalletResponse struct {
	BalanceCents int64     `json:"balance_cents"`
	PendingCents int64     `json:"pending_cents"`
	Currency     string    `json:"currency"`
	UpdatedAt    time.Time `json:"updated_at"`
}
