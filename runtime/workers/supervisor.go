package workers

import (
	"chat-relay/contract"
	"chat-relay/errors"
	"chat-relay/observability"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const waitTimeBeforeRestart = 200 * time.Millisecond

// Supervisor runs the background loops of the relay (monitor, health probe).
// A loop that panics or fails is restarted after a short delay; a loop that
// returns nil is done. Run returns once every loop has stopped.
type Supervisor struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	log     *slog.Logger
	metrics *observability.Metrics
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger, metrics *observability.Metrics) *Supervisor {
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, metrics: metrics}
}

func (s *Supervisor) Add(worker ...contract.Worker) *Supervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run blocks until ctx is cancelled or Stop is called, and every worker returned.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	for _, worker := range s.workers {
		s.start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	name := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("Worker stopped", "name", name)
				return
			}

			err := run(ctx, worker)
			if err == nil {
				s.log.Info("Worker finished", "name", name)
				return
			}
			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", name)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", name, "error", err)
			s.metrics.RecordRestart(name)
			select {
			case <-ctx.Done():
				return
			case <-time.After(waitTimeBeforeRestart):
			}
		}
	}()
}

func run(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Stop cancels every worker. Run returns once they are all done.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
