package workers

import (
	"chat-relay/mocks"
	"chat-relay/observability"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSupervisor_RestartOnPanic(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	workerMock := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			calls.Add(1)
			panic("boom")
		}).
		AnyTimes()

	sup := NewSupervisor(log, metrics).Add(workerMock)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// When the worker keeps panicking
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	// Then it is restarted until the context ends
	req.Eventually(func() bool { return calls.Load() >= 2 }, 900*time.Millisecond, 20*time.Millisecond)
	<-done
	count, err := testutil.GatherAndCount(registry, "chat_relay_worker_restarts_total")
	req.NoError(err)
	req.Equal(1, count)
}

func TestSupervisor_RestartOnError(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker failing once then finishing
	gomock.InOrder(
		workerMock.EXPECT().Run(gomock.Any()).Return(fmt.Errorf("listener lost")),
		workerMock.EXPECT().Run(gomock.Any()).Return(nil),
	)

	done := make(chan struct{})
	go func() {
		NewSupervisor(log, nil).Add(workerMock).Run(context.Background())
		close(done)
	}()

	// Then the supervisor returns after the second run
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Supervisor should have stopped after the retry succeeded")
	}
}

func TestSupervisor_StopOnSuccess(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker running only once
	workerMock.EXPECT().
		Run(gomock.Any()).
		Return(nil).
		Times(1)

	sup := NewSupervisor(log, nil)

	done := make(chan struct{})
	go func() {
		sup.Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
		// Then the supervisor saw a success and stopped
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have stopped after worker success")
	}
}

func TestSupervisor_Stop(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	workerMock := mocks.NewMockWorker(ctrl)

	started := make(chan struct{})
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return nil
		})

	sup := NewSupervisor(log, nil).Add(workerMock)
	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()
	<-started

	// When the supervisor is stopped
	sup.Stop()

	// Then the blocking worker returns
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have stopped its workers")
	}
}
