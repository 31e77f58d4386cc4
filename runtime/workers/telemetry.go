package workers

import (
	"context"
	"digest-lab/domain/event"
	"log/slog"
	"time"
)

type TelemetryWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	telemetryChan  chan event.Event
	handlers       []event.Handler
}

func NewTelemetryWorker(log *slog.Logger,
	metricInterval time.Duration,
	telemetryChan chan event.Event,
	handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		metricInterval: metricInterval,
		telemetryChan:  telemetryChan,
		handlers:       handlers,
	}
}

func (w TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry worker")
			return nil
		case evt := <-w.telemetryChan:
			w.handle(evt)
		}
	}
}

func (w TelemetryWorker) handle(event event.Event) {
	for _, h := range w.handlers {
		h.Handle(event)
	}
}
