package grpcserver

import (
	"context"
	"errors"
	"net"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"docgate/pkg/logger"
)

// Server exposes the standard gRPC health protocol so orchestrators can
// probe the service without going through HTTP.
type Server struct {
	config   Config
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

func New(cfg Config) *Server {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)

	return &Server{
		config: cfg,
		server: s,
		health: h,
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", net.JoinHostPort(s.config.Bind, strconv.Itoa(int(s.config.Port))))
	if err != nil {
		return err
	}
	s.listener = lis

	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Error("grpc server stopped", "err", err)
		}
	}()

	logger.Info("grpc health server started", "addr", lis.Addr().String())

	return nil
}

// Addr is only valid after Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// SetServing updates the status of service; "" is the overall server status.
func (s *Server) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus(service, status)
}

// Stop marks every service as not serving and drains in-flight calls until
// ctx expires.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
}
