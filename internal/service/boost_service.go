package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/events"
	"github.com/gamerhub/marketplace/internal/repository"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// CreateBoostInput carries the fields of a new boosting request.
type CreateBoostInput struct {
	Game        string
	CurrentRank string
	TargetRank  string
	Notes       string
}

// PlaceBidInput carries a booster's offer.
type PlaceBidInput struct {
	AmountCents    int64
	EstimatedHours int
	Message        string
}

// BoostService runs the boosting marketplace: requests and bids.
type BoostService struct {
	boosts     repository.BoostRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBoostService constructs the service.
func NewBoostService(boosts repository.BoostRepository, dispatcher events.Dispatcher, logger *zap.Logger) *BoostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoostService{boosts: boosts, dispatcher: dispatcher, logger: logger}
}

// CreateRequest opens a boosting request for requester.
func (s *BoostService) CreateRequest(ctx context.Context, requester domain.Identity, in CreateBoostInput) (_ *domain.BoostRequest, err error) {
	ctx, span := startSpan(ctx, "BoostService.CreateRequest")
	defer func() { endSpan(span, err) }()

	req := &domain.BoostRequest{
		RequesterID: requester.ID,
		Game:        strings.TrimSpace(in.Game),
		CurrentRank: strings.TrimSpace(in.CurrentRank),
		TargetRank:  strings.TrimSpace(in.TargetRank),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      domain.BoostStatusOpen,
	}
	if req.Game == "" || req.CurrentRank == "" || req.TargetRank == "" {
		return nil, apperrors.NewValidationError("game, current_rank and target_rank required", nil)
	}
	if strings.EqualFold(req.CurrentRank, req.TargetRank) {
		return nil, apperrors.NewValidationError("target rank must differ from current rank", nil)
	}

	if err := s.boosts.CreateRequest(ctx, req); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventBoostRequested,
		ActorID:   requester.ID,
		SubjectID: req.ID,
		Payload:   events.BoostRequestedPayload{Game: req.Game, TargetRank: req.TargetRank},
	})
	return req, nil
}

// GetRequest returns a boosting request.
func (s *BoostService) GetRequest(ctx context.Context, id string) (*domain.BoostRequest, error) {
	if err := requireUUID("boost request", id); err != nil {
		return nil, err
	}
	req, err := s.boosts.GetRequest(ctx, id)
	if err != nil {
		return nil, lookupError("boost request", id, err)
	}
	return req, nil
}

// PlaceBid records bidder's offer on an open request.
func (s *BoostService) PlaceBid(ctx context.Context, bidder domain.Identity, boostID string, in PlaceBidInput) (_ *domain.Bid, err error) {
	ctx, span := startSpan(ctx, "BoostService.PlaceBid")
	defer func() { endSpan(span, err) }()

	if in.AmountCents <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", map[string]any{"field": "amount_cents"})
	}
	if in.EstimatedHours < 0 {
		return nil, apperrors.NewValidationError("estimated hours cannot be negative", map[string]any{"field": "estimated_hours"})
	}

	req, err := s.GetRequest(ctx, boostID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID == bidder.ID {
		return nil, apperrors.NewForbidden("cannot bid on your own boost request")
	}
	if req.Status != domain.BoostStatusOpen {
		return nil, apperrors.NewConflict("boost request is not open", map[string]any{"status": req.Status})
	}

	bid := &domain.Bid{
		BoostID:        req.ID,
		BidderID:       bidder.ID,
		AmountCents:    in.AmountCents,
		EstimatedHours: in.EstimatedHours,
		Message:        strings.TrimSpace(in.Message),
	}
	if err := s.boosts.CreateBid(ctx, bid); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventBidPlaced,
		ActorID:   bidder.ID,
		SubjectID: req.ID,
		Payload: events.BidPlacedPayload{
			BidID:       bid.ID,
			RequesterID: req.RequesterID,
			AmountCents: bid.AmountCents,
		},
	})
	return bid, nil
}

// ListBids returns bids on a request, cheapest first.
func (s *BoostService) ListBids(ctx context.Context, boostID string) ([]domain.Bid, error) {
	if _, err := s.GetRequest(ctx, boostID); err != nil {
		return nil, err
	}
	bids, err := s.boosts.ListBids(ctx, boostID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return bids, nil
}

// Close marks the request closed; only the requester may close it.
func (s *BoostService) Close(ctx context.Context, requester domain.Identity, boostID string) error {
	req, err := s.GetRequest(ctx, boostID)
	if err != nil {
		return err
	}
	if req.RequesterID != requester.ID {
		return apperrors.NewForbidden("only the requester can close this boost")
	}
	if err := s.boosts.UpdateRequestStatus(ctx, req.ID, domain.BoostStatusClosed); err != nil {
		return lookupError("boost request", boostID, err)
	}
	return nil
}
