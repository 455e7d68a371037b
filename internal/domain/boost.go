package domain

import "time"

// BoostStatus is the lifecycle of a boosting request.
type BoostStatus string

const (
	BoostStatusOpen     BoostStatus = "OPEN"
	BoostStatusAssigned BoostStatus = "ASSIGNED"
	BoostStatusClosed   BoostStatus = "CLOSED"
)

// BoostRequest is a player asking boosters to bid on a rank goal.
type BoostRequest struct {
	ID          string
	RequesterID string
	Game        string
	CurrentRank string
	TargetRank  string
	Notes       string
	Status      BoostStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bid is a booster's offer on a boost request.
type Bid struct {
	ID             string
	BoostID        string
	BidderID       string
	AmountCents    int64
	EstimatedHours int
	Message        string
	CreatedAt      time.Time
}
