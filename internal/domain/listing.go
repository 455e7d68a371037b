package domain

import "time"

// ListingStatus tracks whether a listing can still be bought.
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "ACTIVE"
	ListingStatusSold   ListingStatus = "SOLD"
	ListingStatusHidden ListingStatus = "HIDDEN"
)

// ListingCategory groups listings in the catalog.
type ListingCategory string

const (
	ListingCategoryAccount  ListingCategory = "ACCOUNT"
	ListingCategoryItem     ListingCategory = "ITEM"
	ListingCategoryCurrency ListingCategory = "CURRENCY"
	ListingCategoryService  ListingCategory = "SERVICE"
)

// Valid reports whether c is a known category.
func (c ListingCategory) Valid() bool {
	switch c {
	case ListingCategoryAccount, ListingCategoryItem, ListingCategoryCurrency, ListingCategoryService:
		return true
	}
	return false
}

// Listing is a product offered by a seller.
type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Game        string
	Category    ListingCategory
	PriceCents  int64
	ImageURL    *string
	Status      ListingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
