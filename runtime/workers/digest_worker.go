package workers

import (
	"context"
	"digest-lab/domain"
	"digest-lab/domain/event"
	"digest-lab/errors"
	"digest-lab/observability"
	"digest-lab/repositories"
	"digest-lab/services"
	goerrors "errors"
	"log/slog"
)

// DigestWorker consumes digest events and walks each one to a terminal state:
// sent, skipped (suppressed or not enough traffic) or failed. Failed events
// stay pending on disk and come back on the next sweep or restart.
type DigestWorker struct {
	ID         int
	log        *slog.Logger
	service    services.IDigestService
	queue      repositories.IDigestQueueRepository
	events     <-chan domain.DigestEvent
	telemetry  chan event.Event
	monitoring *observability.MonitoringManager
}

func NewDigestWorker(
	id int,
	log *slog.Logger,
	service services.IDigestService,
	queue repositories.IDigestQueueRepository,
	events <-chan domain.DigestEvent,
	telemetry chan event.Event,
	monitoring *observability.MonitoringManager,
) *DigestWorker {
	return &DigestWorker{
		ID:         id,
		log:        log,
		service:    service,
		queue:      queue,
		events:     events,
		telemetry:  telemetry,
		monitoring: monitoring,
	}
}

func (w *DigestWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping digest worker", "worker_id", w.ID)
			return nil
		case evt := <-w.events:
			w.process(ctx, evt)
		}
	}
}

func (w *DigestWorker) process(ctx context.Context, evt domain.DigestEvent) {
	err := w.service.Deliver(ctx, evt)

	switch {
	case err == nil:
		if err := w.queue.MarkSent(evt); err != nil && !goerrors.Is(err, errors.ErrEventNotPending) {
			w.log.Error("Failed to mark digest as sent", "user_id", evt.UserID, "err", err)
		}
		w.monitoring.IncrDigestsSent()
		w.publish(event.DigestSentType, evt, "")

	case goerrors.Is(err, errors.ErrDigestSuppressed),
		goerrors.Is(err, errors.ErrNotEnoughTraffic),
		goerrors.Is(err, errors.ErrUserNotFound):
		// Nothing to email this cycle; drop the pending entry quietly.
		if err := w.queue.Discard(evt); err != nil && !goerrors.Is(err, errors.ErrEventNotPending) {
			w.log.Error("Failed to discard digest event", "user_id", evt.UserID, "err", err)
		}
		w.monitoring.IncrDigestsSkipped()
		w.publish(event.DigestSkippedType, evt, err.Error())

	case goerrors.Is(err, context.Canceled):
		// Shutdown mid-delivery: the event stays pending for the next boot.

	default:
		w.log.Error("Digest delivery failed", "worker_id", w.ID, "user_id", evt.UserID, "err", err)
		w.monitoring.IncrDigestsFailed()
		w.publish(event.DigestFailedType, evt, err.Error())
	}
}

func (w *DigestWorker) publish(eventType event.Type, evt domain.DigestEvent, reason string) {
	e := event.Event{Type: eventType, Payload: event.DigestOutcome{
		UserID: evt.UserID,
		Cutoff: evt.Cutoff,
		Reason: reason,
	}}
	select {
	case w.telemetry <- e:
	default:
		w.log.Debug("Telemetry event lost", "type", eventType)
	}
}
