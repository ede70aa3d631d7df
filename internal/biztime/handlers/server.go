// Package handlers serves the biztime JSON API over HTTP, next to a gRPC
// listener that exposes the standard health service. It decodes requests,
// calls the controllers and turns their errors into the uniform envelope.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthService is the gRPC health service name reported next to the
// overall ("") status.
const HealthService = "biztime"

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	health       *health.Server
	httpServer   *http.Server
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string

	mu           sync.Mutex
	grpcListener net.Listener
	httpListener net.Listener
	serving      bool
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
// Port 0 picks a free port.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	grpcServer := grpc.NewServer(grpcOpts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)

	s := &Server{
		grpcServer:   grpcServer,
		health:       hs,
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger:       logger.Named("server"),
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
	s.SetServing(true)
	return s
}

// RegisterHTTPHandler sets the handler served on the HTTP endpoint.
func (s *Server) RegisterHTTPHandler(h http.Handler) {
	s.httpServer.Handler = h
	s.httpServer.Addr = s.httpEndpoint
}

// Listen binds both endpoints without serving yet.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grpcLis, err := net.Listen("tcp", s.grpcEndpoint)
	if err != nil {
		return fmt.Errorf("gRPC listen error: %w", err)
	}
	httpLis, err := net.Listen("tcp", s.httpEndpoint)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("HTTP listen error: %w", err)
	}
	s.grpcListener = grpcLis
	s.httpListener = httpLis
	return nil
}

// GRPCAddr returns the bound gRPC address, or nil before Listen.
func (s *Server) GRPCAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grpcListener == nil {
		return nil
	}
	return s.grpcListener.Addr()
}

// HTTPAddr returns the bound HTTP address, or nil before Listen.
func (s *Server) HTTPAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpListener == nil {
		return nil
	}
	return s.httpListener.Addr()
}

// Start binds both endpoints if needed and serves them concurrently,
// returning on the first error or after Stop.
func (s *Server) Start() error {
	if s.GRPCAddr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	grpcLis, httpLis := s.grpcListener, s.httpListener
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", grpcLis.Addr().String()))
		if err := s.grpcServer.Serve(grpcLis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", httpLis.Addr().String()))
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}

// SetServing publishes the gRPC health status for the server and for
// HealthService.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(HealthService, status)

	s.mu.Lock()
	changed := s.serving != serving
	s.serving = serving
	s.mu.Unlock()
	if changed {
		s.logger.Info("Health status changed", zap.String("status", status.String()))
	}
}

// WatchHealth pings db every interval and mirrors the result in the gRPC
// health service until ctx is done.
func (s *Server) WatchHealth(ctx context.Context, db Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.checkHealth(ctx, db, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkHealth(ctx, db, interval)
		}
	}
}

func (s *Server) checkHealth(ctx context.Context, db Pinger, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := db.Ping(pingCtx)
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("Database ping failed", zap.Error(err))
	}
	if ctx.Err() != nil {
		return
	}
	s.SetServing(err == nil)
}
