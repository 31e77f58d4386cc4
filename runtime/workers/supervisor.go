package workers

import (
	"context"
	"digest-lab/contract"
	"digest-lab/errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultRestartInterval = 200 * time.Millisecond

// Supervisor Own a context and a Cancel function
// Run each worker in a goroutine
// Check panics and errors
// Restart workers automatically
// Shutdown properly if parent context is canceled
// Wait for the end of all goroutines via WaitGroup
type Supervisor struct {
	Cancel          context.CancelFunc // To stop the context
	wg              *sync.WaitGroup    // Wait for the end of goroutines
	log             *slog.Logger
	restartInterval time.Duration
	workers         []contract.Worker
}

func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	if restartInterval <= 0 {
		restartInterval = defaultRestartInterval
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restartInterval: restartInterval}
}

// Run creates a local cancellation trigger tied to the parent ctx.
// If the parent (main) cancels, we Cancel.
// If WE call s.Cancel(), only our children Cancel.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	// Safety: ensure resources are cleaned up when Run exits
	defer s.Cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision.
// The worker is executed in a dedicated goroutine. If its Run method panics,
// the supervisor recovers, restarts the worker, and keeps the supervision
// loop alive. A failure in one worker must not stop the supervisor itself.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = errors.ErrWorkerPanic
					}
				}()
				// Restarted after a crash, without restarting the supervisor
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				return
			case <-time.After(s.restartInterval):
				// Delay elapsed and context is still active.
			}
		}
	}()
}

// Stop Cancel all goroutines listening channel for Ctx.Done
// Supervisor will wait for all goroutines to finish
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
