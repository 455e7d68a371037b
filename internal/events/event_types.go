package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingCreated  EventType = "listing_created"
	EventBoostRequested  EventType = "boost_requested"
	EventBidPlaced       EventType = "bid_placed"
	EventFeedbackCreated EventType = "feedback_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingCreatedPayload payload.
type ListingCreatedPayload struct {
	Title      string `json:"title"`
	Game       string `json:"game"`
	PriceCents int64  `json:"price_cents"`
}

// BoostRequestedPayload payload.
type BoostRequestedPayload struct {
	Game       string `json:"game"`
	TargetRank string `json:"target_rank"`
}

// BidPlacedPayload payload.
type BidPlacedPayload struct {
	BidID       string `json:"bid_id"`
	RequesterID string `json:"requester_id"`
	AmountCents int64  `json:"amount_cents"`
}

// FeedbackCreatedPayload payload.
type FeedbackCreatedPayload struct {
	FeedbackID string `json:"feedback_id"`
	Rating     int    `json:"rating"`
}
