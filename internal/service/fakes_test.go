package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/repository"
)

var errUnique = &pgconn.PgError{Code: "23505", Message: "duplicate key"}

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*domain.User
	calls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return fmt.Errorf("insert user: %w", errUnique)
		}
	}
	user.ID = uuid.NewString()
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeLimiter struct {
	max      int
	failures map[string]int
}

func newFakeLimiter(limit int) *fakeLimiter {
	return &fakeLimiter{max: limit, failures: map[string]int{}}
}

func (f *fakeLimiter) Allowed(_ context.Context, email string) (bool, error) {
	return f.failures[email] < f.max, nil
}

func (f *fakeLimiter) RecordFailure(_ context.Context, email string) error {
	f.failures[email]++
	return nil
}

func (f *fakeLimiter) Reset(_ context.Context, email string) error {
	delete(f.failures, email)
	return nil
}

type fakeListings struct {
	items map[string]*domain.Listing
	last  repository.ListingFilter
}

func newFakeListings() *fakeListings {
	return &fakeListings{items: map[string]*domain.Listing{}}
}

func (f *fakeListings) Create(_ context.Context, l *domain.Listing) error {
	l.ID = uuid.NewString()
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeListings) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	if l, ok := f.items[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeListings) List(_ context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	f.last = filter
	var out []domain.Listing
	for _, l := range f.items {
		out = append(out, *l)
	}
	return out, nil
}

type fakeBoosts struct {
	requests map[string]*domain.BoostRequest
	bids     []domain.Bid
}

func newFakeBoosts() *fakeBoosts {
	return &fakeBoosts{requests: map[string]*domain.BoostRequest{}}
}

func (f *fakeBoosts) CreateRequest(_ context.Context, req *domain.BoostRequest) error {
	req.ID = uuid.NewString()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeBoosts) GetRequest(_ context.Context, id string) (*domain.BoostRequest, error) {
	if r, ok := f.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBoosts) UpdateRequestStatus(_ context.Context, id string, status domain.BoostStatus) error {
	r, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	r.Status = status
	return nil
}

func (f *fakeBoosts) CreateBid(_ context.Context, bid *domain.Bid) error {
	bid.ID = uuid.NewString()
	f.bids = append(f.bids, *bid)
	return nil
}

func (f *fakeBoosts) ListBids(_ context.Context, boostID string) ([]domain.Bid, error) {
	var out []domain.Bid
	for _, b := range f.bids {
		if b.BoostID == boostID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeFeedback struct {
	items []domain.Feedback
}

func (f *fakeFeedback) Create(_ context.Context, fb *domain.Feedback) error {
	for _, existing := range f.items {
		if existing.ListingID == fb.ListingID && existing.AuthorID == fb.AuthorID {
			return errUnique
		}
	}
	fb.ID = uuid.NewString()
	f.items = append(f.items, *fb)
	return nil
}

func (f *fakeFeedback) ListByListing(_ context.Context, listingID string, _, _ int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, fb := range f.items {
		if fb.ListingID == listingID {
			out = append(out, fb)
		}
	}
	return out, nil
}

type fakeWallets struct {
	wallets   map[string]*domain.Wallet
	purchases []domain.Purchase
}

func (f *fakeWallets) GetByUser(_ context.Context, userID string) (*domain.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWallets) LatestPurchase(_ context.Context, buyerID, listingID string) (*domain.Purchase, error) {
	for i := len(f.purchases) - 1; i >= 0; i-- {
		p := f.purchases[i]
		if p.BuyerID == buyerID && p.ListingID == listingID {
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}
