package grpc_handler

import (
	"context"
	"net"
	"time"

	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported for the id allocator.
const ServiceName = "sequence.v1.SequenceService"

const probeTimeout = 2 * time.Second

// HealthServer answers grpc.health.v1 checks from the range authority probe.
type HealthServer struct {
	healthpb.UnimplementedHealthServer
	probe port.AuthorityProbe
}

func NewHealthServer(probe port.AuthorityProbe) *HealthServer {
	return &HealthServer{probe: probe}
}

func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if h.probe != nil {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := h.probe.Ping(probeCtx); err != nil {
			logger.Warnw("Health check failed", "service", req.GetService(), "error", err.Error())
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// Server owns the gRPC server that exposes the health service.
type Server struct {
	grpc *grpc.Server
	addr string
}

func NewServer(addr string, probe port.AuthorityProbe, opts ...grpc.ServerOption) *Server {
	s := &Server{grpc: grpc.NewServer(opts...), addr: addr}
	healthpb.RegisterHealthServer(s.grpc, NewHealthServer(probe))
	return s
}

// Start listens on addr and serves until Stop is called.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.grpc.Serve(lis)
}

func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
