// Package observability aggregates in-process digest pipeline counters.
// Counters feed the console reporter and the inspect CLI; they are not
// persisted and reset on restart.
package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineStats is a point-in-time snapshot of the digest pipeline.
type PipelineStats struct {
	UsersSwept       uint64 `json:"users_swept"`
	DigestsQueued    uint64 `json:"digests_queued"`
	DigestsSent      uint64 `json:"digests_sent"`
	DigestsSkipped   uint64 `json:"digests_skipped"`
	DigestsFailed    uint64 `json:"digests_failed"`
	CurrentQueueSize int    `json:"current_queue_size"`
	AllocMemMb       uint64 `json:"alloc_mem_mb"`
	NumGC            uint32 `json:"num_gc"`
}

// MonitoringManager owns the live counters behind PipelineStats.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats PipelineStats

	usersSwept     uint64
	digestsQueued  uint64
	digestsSent    uint64
	digestsSkipped uint64
	digestsFailed  uint64
	queueSize      int64
	LastCheck      time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:       log,
		LastCheck: time.Now(),
	}
}

func (mm *MonitoringManager) AddUsersSwept(n uint64) {
	atomic.AddUint64(&mm.usersSwept, n)
}

func (mm *MonitoringManager) IncrDigestsQueued() {
	atomic.AddUint64(&mm.digestsQueued, 1)
	atomic.AddInt64(&mm.queueSize, 1)
}

func (mm *MonitoringManager) IncrDigestsSent() {
	atomic.AddUint64(&mm.digestsSent, 1)
	atomic.AddInt64(&mm.queueSize, -1)
}

func (mm *MonitoringManager) IncrDigestsSkipped() {
	atomic.AddUint64(&mm.digestsSkipped, 1)
	atomic.AddInt64(&mm.queueSize, -1)
}

// IncrDigestsFailed leaves the queue gauge untouched: a failed delivery stays
// pending on disk and is retried on the next sweep.
func (mm *MonitoringManager) IncrDigestsFailed() {
	atomic.AddUint64(&mm.digestsFailed, 1)
}

// SetQueueSize overrides the derived queue gauge, used at boot when pending
// events are replayed from disk.
func (mm *MonitoringManager) SetQueueSize(size int) {
	atomic.StoreInt64(&mm.queueSize, int64(size))
}

// Refresh recomputes the snapshot returned by GetLatest.
func (mm *MonitoringManager) Refresh() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	queueSize := atomic.LoadInt64(&mm.queueSize)
	if queueSize < 0 {
		queueSize = 0
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats = PipelineStats{
		UsersSwept:       atomic.LoadUint64(&mm.usersSwept),
		DigestsQueued:    atomic.LoadUint64(&mm.digestsQueued),
		DigestsSent:      atomic.LoadUint64(&mm.digestsSent),
		DigestsSkipped:   atomic.LoadUint64(&mm.digestsSkipped),
		DigestsFailed:    atomic.LoadUint64(&mm.digestsFailed),
		CurrentQueueSize: int(queueSize),
		AllocMemMb:       memStats.Alloc / 1024 / 1024,
		NumGC:            memStats.NumGC,
	}
	mm.LastCheck = time.Now()
}

func (mm *MonitoringManager) GetLatest() PipelineStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}
