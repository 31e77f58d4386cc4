package workers

import (
	"context"
	"digest-lab/observability"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthWorker samples the process itself (RSS, CPU, OS status) on a fixed
// interval and refreshes the monitoring snapshot so the reporter and the
// inspect CLI see live numbers.
type HealthWorker struct {
	log            *slog.Logger
	monitoring     *observability.MonitoringManager
	metricInterval time.Duration
}

func NewHealthWorker(log *slog.Logger, monitoring *observability.MonitoringManager, metricInterval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, monitoring: monitoring, metricInterval: metricInterval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health worker")
			return nil
		case <-ticker.C:
			w.monitoring.Refresh()
			w.sample(proc)
		}
	}
}

func (w *HealthWorker) sample(proc *process.Process) {
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		w.log.Error("Failed to collect self memory stats", "err", err)
		return
	}
	cpu, err := proc.CPUPercent()
	if err != nil {
		w.log.Error("Failed to collect self cpu stats", "err", err)
		return
	}
	status, err := proc.Status()
	if err != nil {
		w.log.Error("Failed to collect self status", "err", err)
		return
	}

	w.log.Debug("Process health",
		"rss_mb", memInfo.RSS/1024/1024,
		"cpu_percent", cpu,
		"status", status,
	)
}
