package workers

import (
	"context"
	"digest-lab/observability"
	"fmt"
	"time"
)

// ReporterWorker prints a one-line pipeline summary on a fixed interval.
// Console only; structured logging stays on slog.
type ReporterWorker struct {
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewReporterWorker(monitoring *observability.MonitoringManager, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{monitoring: monitoring, interval: interval}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.printStats(startTime)
			fmt.Println("\n🏁 Reporter stopped.")
			return nil
		case <-ticker.C:
			w.printStats(startTime)
		}
	}
}

func (w *ReporterWorker) printStats(startTime time.Time) {
	stats := w.monitoring.GetLatest()
	duration := time.Since(startTime).Round(time.Second).String()

	fmt.Printf("\r📊 [%s] RAM: %dMB | Swept: %d | Queued: %d | Sent: %d | Skipped: %d | Failed: %d | Queue: %d",
		duration,
		stats.AllocMemMb,
		stats.UsersSwept,
		stats.DigestsQueued,
		stats.DigestsSent,
		stats.DigestsSkipped,
		stats.DigestsFailed,
		stats.CurrentQueueSize,
	)
}
