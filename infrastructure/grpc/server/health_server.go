package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name probed by orchestrators on the health port.
const ServiceName = "chatrelay.Relay"

// Probe reports whether a dependency of the relay is usable.
type Probe func(ctx context.Context) error

// HealthServer publishes the relay status through the standard gRPC health service.
type HealthServer struct {
	log      *slog.Logger
	health   *health.Server
	probe    Probe
	interval time.Duration
}

func NewHealthServer(log *slog.Logger, probe Probe, interval time.Duration) *HealthServer {
	h := &HealthServer{log: log, health: health.NewServer(), probe: probe, interval: interval}
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

func (h *HealthServer) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Run probes at a fixed interval until ctx is done, then reports every service
// as not serving.
func (h *HealthServer) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return nil
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Check runs the probe once and publishes the outcome.
func (h *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.probe(ctx); err != nil {
		h.log.Warn("Health probe failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(ServiceName, status)
	h.health.SetServingStatus("", status)
	return status
}
