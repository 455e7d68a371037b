package events

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDispatcher_PublishContinuesAfterFailure(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	boom := errors.New("boom")

	d.Subscribe(EventBidPlaced, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventBidPlaced, func(context.Context, Event) error {
		calls++
		return nil
	})
	d.Subscribe(EventListingCreated, func(context.Context, Event) error {
		t.Fatalf("listing handler must not run for bid events")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventBidPlaced})
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
}

func TestDispatcher_NoListeners(t *testing.T) {
	if err := NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventFeedbackCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestDispatcher_PanickingHandlerBecomesError(t *testing.T) {
	d := NewInMemoryDispatcher()
	ran := false
	d.Subscribe(EventBidPlaced, func(context.Context, Event) error {
		panic("nil wallet")
	})
	d.Subscribe(EventBidPlaced, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventBidPlaced})
	if err == nil || !strings.Contains(err.Error(), "nil wallet") {
		t.Fatalf("expected panic converted to error, got %v", err)
	}
	if !ran {
		t.Fatalf("handler after the panic must still run")
	}
}
