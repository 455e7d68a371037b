package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/events"
)

type job struct {
	ctx     context.Context
	event   events.Event
	handler events.EventHandler
}

// NotificationWorker runs event handlers off the request path. Handlers
// registered through Dispatcher are queued and executed by one goroutine.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan job
	logger *zap.Logger
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewNotificationWorker wraps inner with a queue of the given size.
func NewNotificationWorker(inner events.Dispatcher, size int, logger *zap.Logger) *NotificationWorker {
	if size <= 0 {
		size = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{inner: inner, queue: make(chan job, size), logger: logger}
}

// Start launches the worker goroutine. It drains the queue and returns once Stop is called.
func (w *NotificationWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for j := range w.queue {
			if err := j.handler(j.ctx, j.event); err != nil {
				w.logger.Warn("notification handler failed",
					zap.String("event_type", string(j.event.Type)),
					zap.Error(err))
			}
		}
	}()
}

// Stop closes the queue and waits for pending jobs. Events published after
// Stop are dropped.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// Publish forwards to the wrapped dispatcher.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	return w.inner.Publish(ctx, event)
}

// Subscribe registers handler so that it runs on the worker. A full queue drops the event.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		w.mu.RLock()
		defer w.mu.RUnlock()
		if w.closed {
			w.logger.Warn("notification worker stopped; dropping event",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID))
			return nil
		}
		select {
		case w.queue <- job{ctx: context.WithoutCancel(ctx), event: event, handler: handler}:
		default:
			w.logger.Warn("notification queue full; dropping event",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID))
		}
		return nil
	})
}
