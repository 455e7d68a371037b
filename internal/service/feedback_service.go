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

// FeedbackService manages listing reviews.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	listings   repository.ListingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFeedbackService constructs the service.
func NewFeedbackService(feedback repository.FeedbackRepository, listings repository.ListingRepository, dispatcher events.Dispatcher, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{feedback: feedback, listings: listings, dispatcher: dispatcher, logger: logger}
}

// Create stores author's review of a listing. Sellers cannot review their own listings.
func (s *FeedbackService) Create(ctx context.Context, author domain.Identity, listingID string, rating int, comment string) (_ *domain.Feedback, err error) {
	ctx, span := startSpan(ctx, "FeedbackService.Create")
	defer func() { endSpan(span, err) }()

	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"field": "rating"})
	}
	if err := requireUUID("listing", listingID); err != nil {
		return nil, err
	}
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, lookupError("listing", listingID, err)
	}
	if listing.SellerID == author.ID {
		return nil, apperrors.NewForbidden("cannot review your own listing")
	}

	fb := &domain.Feedback{
		ListingID: listing.ID,
		AuthorID:  author.ID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("feedback already submitted", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventFeedbackCreated,
		ActorID:   author.ID,
		SubjectID: listing.ID,
		Payload:   events.FeedbackCreatedPayload{FeedbackID: fb.ID, Rating: fb.Rating},
	})
	return fb, nil
}

// List returns reviews for a listing, newest first.
func (s *FeedbackService) List(ctx context.Context, listingID string, limit, offset int) ([]domain.Feedback, error) {
	if err := requireUUID("listing", listingID); err != nil {
		return nil, err
	}
	items, err := s.feedback.ListByListing(ctx, listingID, limit, offset)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}
