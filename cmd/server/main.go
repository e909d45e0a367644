package main

import (
	"chat-relay/auth"
	"chat-relay/infrastructure/api"
	"chat-relay/infrastructure/grpc/server"
	"chat-relay/infrastructure/realtime"
	"chat-relay/internal"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Deferred cleanups run before the exit code reaches main.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		logger.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, config.DebugPort, endpoint, RelayMapper)
	}

	// 3. Domain services
	registerer := prometheus.NewRegistry()
	registerer.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registerer)

	messageRepository := repositories.NewMessageRepository(db, logger)
	followRepository := repositories.NewFollowRepository(db, logger)
	followService := services.NewFollowService(logger, followRepository)
	gate := services.NewAccessGate(followService)
	chatService := services.NewChatService(logger, gate, messageRepository)
	verifier := auth.NewJWTVerifier(auth.NewTokenService(config.TokenSecret, config.TokenIssuer))

	// 4. Realtime runtime
	registry := runtime.NewRegistry(logger, metrics)
	gateway := runtime.NewGateway(logger, verifier, registry, chatService, metrics, config.HandlerTimeout)
	chatServer := realtime.NewChatServer(logger, gateway, realtime.Options{
		ConnectionBufferSize: config.ConnectionBufferSize,
		DeliveryTimeout:      config.DeliveryTimeout,
		PongWait:             config.PongWait,
		ReadLimit:            config.ReadLimit,
		CORSWhitelist:        config.Origins(),
	})
	monitor := observability.NewMonitor(logger, registry, metrics, config.MetricInterval)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 2)

	// 6. Listeners. Both ports are bound before anything serves so a bind
	// failure returns with nothing left running.
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	healthAddress := fmt.Sprintf("%s:%d", config.Host, config.HealthPort)
	listeners, err := bindListeners(address, healthAddress)
	if err != nil {
		return exitRuntime, err
	}
	httpListener, listener := listeners[0], listeners[1]

	// 7. HTTP server (websocket upgrade, health, metrics)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           api.NewRouter(logger, chatServer, monitor, registerer),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. gRPC health server
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(logger)))
	healthServer := server.NewHealthServer(logger, badgerProbe(db), config.MetricInterval)
	healthServer.Register(s)

	// Background loops restart on crash instead of taking the relay down.
	sup := workers.NewSupervisor(logger, metrics).Add(monitor, healthServer)
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	go func() {
		logger.Info("Starting gRPC health server", "address", healthAddress)
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("📡 gRPC exposed services", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
		stop()
	}

	// 10. Graceful shutdown: stop accepting, then close live sessions so they leave their rooms.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	if err := chatServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Websocket sessions did not drain", "error", err)
	}
	s.GracefulStop()
	<-supervised
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

// bindListeners binds every address or none: on a failure the listeners
// already bound are closed.
func bindListeners(addresses ...string) ([]net.Listener, error) {
	listeners := make([]net.Listener, 0, len(addresses))
	for _, address := range addresses {
		l, err := net.Listen("tcp", address)
		if err != nil {
			for _, bound := range listeners {
				_ = bound.Close()
			}
			return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
		}
		listeners = append(listeners, l)
	}
	return listeners, nil
}

func badgerProbe(db *badger.DB) server.Probe {
	return func(context.Context) error {
		if db.IsClosed() {
			return errors.New("badger is closed")
		}
		return nil
	}
}
