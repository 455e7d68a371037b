package domain

import "time"

// Feedback is a buyer review on a listing.
type Feedback struct {
	ID        string
	ListingID string
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
