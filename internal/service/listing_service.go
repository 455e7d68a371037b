package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/events"
	"github.com/gamerhub/marketplace/internal/repository"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// CreateListingInput carries seller-supplied listing fields.
type CreateListingInput struct {
	Title       string
	Description string
	Game        string
	Category    domain.ListingCategory
	PriceCents  int64
	ImageURL    *string
}

// ListingService manages the product catalog.
type ListingService struct {
	listings   repository.ListingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewListingService constructs the service.
func NewListingService(listings repository.ListingRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{listings: listings, dispatcher: dispatcher, logger: logger}
}

// Create publishes a new listing for seller.
func (s *ListingService) Create(ctx context.Context, seller domain.Identity, in CreateListingInput) (_ *domain.Listing, err error) {
	ctx, span := startSpan(ctx, "ListingService.Create")
	defer func() { endSpan(span, err) }()

	in.Title = strings.TrimSpace(in.Title)
	in.Game = strings.TrimSpace(in.Game)
	details := map[string]any{}
	if in.Title == "" {
		details["title"] = "required"
	}
	if in.Game == "" {
		details["game"] = "required"
	}
	if !in.Category.Valid() {
		details["category"] = "unknown category"
	}
	if in.PriceCents <= 0 {
		details["price_cents"] = "must be positive"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid listing", details)
	}

	listing := &domain.Listing{
		SellerID:    seller.ID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Game:        in.Game,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		Status:      domain.ListingStatusActive,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventListingCreated,
		ActorID:   seller.ID,
		SubjectID: listing.ID,
		Payload: events.ListingCreatedPayload{
			Title:      listing.Title,
			Game:       listing.Game,
			PriceCents: listing.PriceCents,
		},
	})
	return listing, nil
}

// Get returns a listing by id.
func (s *ListingService) Get(ctx context.Context, id string) (_ *domain.Listing, err error) {
	ctx, span := startSpan(ctx, "ListingService.Get")
	defer func() { endSpan(span, err) }()

	if err := requireUUID("listing", id); err != nil {
		return nil, err
	}
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("listing", id, err)
	}
	return listing, nil
}

// Browse lists active listings matching filter.
func (s *ListingService) Browse(ctx context.Context, filter repository.ListingFilter) (_ []domain.Listing, err error) {
	ctx, span := startSpan(ctx, "ListingService.Browse")
	defer func() { endSpan(span, err) }()

	if filter.Category != nil && !filter.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *filter.Category})
	}
	if len(filter.Statuses) == 0 {
		filter.Statuses = []domain.ListingStatus{domain.ListingStatusActive}
	}
	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return listings, nil
}

func (s *ListingService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
