package workers

import (
	"context"
	"digest-lab/domain"
	"digest-lab/domain/event"
	"digest-lab/errors"
	"digest-lab/observability"
	"digest-lab/repositories"
	"digest-lab/services"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"
)

// SchedulerWorker drives the digest pipeline: on each cron tick it sweeps the
// user base, persists one digest event per eligible user, and feeds the
// worker channel. At boot it replays events a previous run left pending.
type SchedulerWorker struct {
	log        *slog.Logger
	cronExpr   string
	service    services.IDigestService
	queue      repositories.IDigestQueueRepository
	events     chan domain.DigestEvent
	telemetry  chan event.Event
	monitoring *observability.MonitoringManager
	now        func() time.Time
}

func NewSchedulerWorker(
	log *slog.Logger,
	cronExpr string,
	service services.IDigestService,
	queue repositories.IDigestQueueRepository,
	events chan domain.DigestEvent,
	telemetry chan event.Event,
	monitoring *observability.MonitoringManager,
) (*SchedulerWorker, error) {
	if !gronx.New().IsValid(cronExpr) {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidCron, cronExpr)
	}
	return &SchedulerWorker{
		log:        log,
		cronExpr:   cronExpr,
		service:    service,
		queue:      queue,
		events:     events,
		telemetry:  telemetry,
		monitoring: monitoring,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (w *SchedulerWorker) Run(ctx context.Context) error {
	if err := w.replayPending(ctx); err != nil {
		return err
	}

	for {
		next, err := gronx.NextTick(w.cronExpr, false)
		if err != nil {
			return fmt.Errorf("cron next tick failed: %w", err)
		}
		w.log.Info("Next digest sweep scheduled", "at", next)

		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping digest scheduler")
			return nil
		case <-time.After(time.Until(next)):
			if err := w.SweepOnce(ctx); err != nil {
				// Returning the error hands us back to the supervisor for a restart.
				return err
			}
		}
	}
}

// SweepOnce performs a single eligibility sweep. Exposed so an admin trigger
// or a test can run the sweep without waiting for the cron tick.
func (w *SchedulerWorker) SweepOnce(ctx context.Context) error {
	events, err := w.service.EligibleEvents(w.now())
	if err != nil {
		return err
	}
	w.monitoring.AddUsersSwept(uint64(len(events)))
	w.log.Info("Digest sweep finished", "eligible_users", len(events))

	for _, evt := range events {
		if err := w.queue.Enqueue(evt); err != nil {
			return err
		}
		w.monitoring.IncrDigestsQueued()
		w.publish(event.Event{Type: event.DigestQueuedType, Payload: event.DigestOutcome{
			UserID: evt.UserID,
			Cutoff: evt.Cutoff,
		}})

		select {
		case w.events <- evt:
		case <-ctx.Done():
			return nil
		}
		w.reportCapacity()
	}
	return nil
}

// replayPending pushes events persisted by a previous run back into the
// channel, so a crash between sweep and send loses nothing.
func (w *SchedulerWorker) replayPending(ctx context.Context) error {
	pending, err := w.queue.NextBatch(cap(w.events))
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	w.log.Info("Replaying pending digest events", "count", len(pending))
	w.monitoring.SetQueueSize(len(pending))
	for _, evt := range pending {
		select {
		case w.events <- evt:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func (w *SchedulerWorker) reportCapacity() {
	w.publish(event.Event{Type: event.ChannelCapacityType, Payload: event.ChannelCapacity{
		ChannelName: "digest_events",
		Length:      len(w.events),
		Capacity:    cap(w.events),
	}})
}

// publish is best effort: telemetry must never block the sweep.
func (w *SchedulerWorker) publish(e event.Event) {
	select {
	case w.telemetry <- e:
	default:
		w.log.Debug("Telemetry event lost", "type", e.Type)
	}
}
