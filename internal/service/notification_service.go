package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/config"
	"github.com/gamerhub/marketplace/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventListingCreated, n.handleListingCreated)
	n.dispatcher.Subscribe(events.EventBoostRequested, n.handleBoostRequested)
	n.dispatcher.Subscribe(events.EventBidPlaced, n.handleBidPlaced)
	n.dispatcher.Subscribe(events.EventFeedbackCreated, n.handleFeedbackCreated)
}

func (n *NotificationService) handleListingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ListingCreated", zap.String("listing_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBoostRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("BoostRequested", zap.String("boost_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// The requester learns about every new bid by email.
func (n *NotificationService) handleBidPlaced(ctx context.Context, event events.Event) error {
	n.logger.Info("BidPlaced", zap.String("boost_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFeedbackCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackCreated", zap.String("listing_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
