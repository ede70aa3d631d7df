package handlers

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func healthStatus(t *testing.T, conn *grpc.ClientConn, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_RegisterHTTPHandler(t *testing.T) {
	s := NewServer(0, 0, zaptest.NewLogger(t))
	s.RegisterHTTPHandler(http.NotFoundHandler())

	assert.NotNil(t, s.httpServer.Handler)
	assert.Equal(t, s.httpEndpoint, s.httpServer.Addr)
	assert.Nil(t, s.GRPCAddr())
	assert.Nil(t, s.HTTPAddr())
}

func TestServer_StartStop(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewServer(0, 0, logger)
	s.RegisterHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))
	require.NoError(t, s.Listen())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	resp, err := http.Get("http://" + s.HTTPAddr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	conn, err := grpc.NewClient(
		s.GRPCAddr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, healthStatus(t, conn, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, healthStatus(t, conn, HealthService))

	s.SetServing(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, healthStatus(t, conn, HealthService))

	grpcAddr := s.GRPCAddr().String()
	s.Stop()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for server to stop")
	}

	lis, err := net.Listen("tcp", grpcAddr)
	if assert.NoError(t, err, "gRPC endpoint should be free after shutdown") {
		_ = lis.Close()
	}
}

func TestServer_ListenConflict(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer taken.Close()

	port := taken.Addr().(*net.TCPAddr).Port
	s := NewServer(port, 0, zaptest.NewLogger(t))
	assert.Error(t, s.Listen())
	assert.Error(t, s.Start())
}

func TestServer_WatchHealth(t *testing.T) {
	s := NewServer(0, 0, zaptest.NewLogger(t))

	var healthy atomic.Bool
	healthy.Store(false)
	pinger := pingerFunc(func(context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errors.New("connection refused")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.WatchHealth(ctx, pinger, 10*time.Millisecond)
		close(done)
	}()

	servingIs := func(want bool) func() bool {
		return func() bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.serving == want
		}
	}
	assert.Eventually(t, servingIs(false), time.Second, 5*time.Millisecond)

	healthy.Store(true)
	assert.Eventually(t, servingIs(true), time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WatchHealth did not return after cancel")
	}
}
