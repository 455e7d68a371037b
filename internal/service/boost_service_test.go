package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/events"
)

func TestBoostService_PlaceBid(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBoosts()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventBidPlaced, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewBoostService(repo, dispatcher, nil)

	requester := domain.Identity{ID: "requester"}
	booster := domain.Identity{ID: "booster"}

	req, err := svc.CreateRequest(ctx, requester, CreateBoostInput{Game: "Valorant", CurrentRank: "Gold 1", TargetRank: "Diamond 1"})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	bid, err := svc.PlaceBid(ctx, booster, req.ID, PlaceBidInput{AmountCents: 15000, EstimatedHours: 12, Message: " gg "})
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if bid.Message != "gg" || bid.BoostID != req.ID {
		t.Fatalf("unexpected bid: %+v", bid)
	}
	if len(published) != 1 || published[0].SubjectID != req.ID || published[0].ID == "" {
		t.Fatalf("expected one bid_placed event, got %+v", published)
	}
	payload, ok := published[0].Payload.(events.BidPlacedPayload)
	if !ok || payload.RequesterID != requester.ID {
		t.Fatalf("unexpected payload %+v", published[0].Payload)
	}

	bids, err := svc.ListBids(ctx, req.ID)
	if err != nil || len(bids) != 1 {
		t.Fatalf("ListBids: %v %v", bids, err)
	}
}

func TestBoostService_PlaceBidRules(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBoosts()
	svc := NewBoostService(repo, nil, nil)
	requester := domain.Identity{ID: "requester"}
	booster := domain.Identity{ID: "booster"}

	req, err := svc.CreateRequest(ctx, requester, CreateBoostInput{Game: "LoL", CurrentRank: "Silver", TargetRank: "Gold"})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	cases := []struct {
		name    string
		bidder  domain.Identity
		boostID string
		amount  int64
		status  int
	}{
		{"zero amount", booster, req.ID, 0, http.StatusBadRequest},
		{"own request", requester, req.ID, 100, http.StatusForbidden},
		{"bad id", booster, "not-a-uuid", 100, http.StatusNotFound},
		{"unknown id", booster, "7f1b2c3d-0000-4000-8000-000000000000", 100, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceBid(ctx, tc.bidder, tc.boostID, PlaceBidInput{AmountCents: tc.amount})
			if statusOf(err) != tc.status {
				t.Fatalf("expected %d, got %v", tc.status, err)
			}
		})
	}

	if err := svc.Close(ctx, booster, req.ID); statusOf(err) != http.StatusForbidden {
		t.Fatalf("only requester may close, got %v", err)
	}
	if err := svc.Close(ctx, requester, req.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := svc.PlaceBid(ctx, booster, req.ID, PlaceBidInput{AmountCents: 100}); statusOf(err) != http.StatusConflict {
		t.Fatalf("expected conflict on closed request, got %v", err)
	}
	if len(repo.bids) != 0 {
		t.Fatalf("no bid should have been stored, got %d", len(repo.bids))
	}
}

func TestBoostService_CreateRequestValidation(t *testing.T) {
	svc := NewBoostService(newFakeBoosts(), nil, nil)
	_, err := svc.CreateRequest(context.Background(), domain.Identity{ID: "u"}, CreateBoostInput{Game: "CS2", CurrentRank: "gold", TargetRank: "Gold"})
	if statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for same ranks, got %v", err)
	}
	_, err = svc.CreateRequest(context.Background(), domain.Identity{ID: "u"}, CreateBoostInput{Game: "CS2"})
	if statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing ranks, got %v", err)
	}
}
