package observability

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Snapshot aggregates what the monitor samples on every tick.
type Snapshot struct {
	Sessions   int       `json:"sessions"`
	Rooms      int       `json:"rooms"`
	AllocBytes uint64    `json:"alloc_bytes"`
	NumGC      uint32    `json:"num_gc"`
	Goroutines int       `json:"goroutines"`
	At         time.Time `json:"at"`
}

// Population is read by the monitor. The room registry implements it.
type Population interface {
	SessionCount() int
	RoomCount() int
}

// Monitor samples the registry and the Go runtime at a fixed interval.
type Monitor struct {
	log        *slog.Logger
	population Population
	metrics    *Metrics
	interval   time.Duration

	mu     sync.RWMutex
	latest Snapshot
}

func NewMonitor(log *slog.Logger, population Population, metrics *Metrics, interval time.Duration) *Monitor {
	return &Monitor{log: log, population: population, metrics: metrics, interval: interval}
}

func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Sample()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Monitor stopped")
			return nil
		case <-ticker.C:
			m.Sample()
		}
	}
}

// Sample records a snapshot immediately and returns it.
func (m *Monitor) Sample() Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	snapshot := Snapshot{
		Sessions:   m.population.SessionCount(),
		Rooms:      m.population.RoomCount(),
		AllocBytes: mem.Alloc,
		NumGC:      mem.NumGC,
		Goroutines: runtime.NumGoroutine(),
		At:         time.Now().UTC(),
	}
	m.metrics.setSnapshot(snapshot)

	m.mu.Lock()
	m.latest = snapshot
	m.mu.Unlock()

	m.log.Debug("Stats updated",
		"sessions", snapshot.Sessions,
		"rooms", snapshot.Rooms,
		"alloc_mb", snapshot.AllocBytes/1024/1024,
		"goroutines", snapshot.Goroutines,
	)
	return snapshot
}

func (m *Monitor) Latest() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
