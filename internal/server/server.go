package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/ppiankov/policygate/api/policygate/v1"
	"github.com/ppiankov/policygate/internal/config"
	"github.com/ppiankov/policygate/internal/constitution"
	"github.com/ppiankov/policygate/internal/gate"
	"github.com/ppiankov/policygate/internal/metrics"
)

// Config holds gRPC server configuration. Zero values fall back to the
// settings loaded from ConfigPath.
type Config struct {
	Port         int
	ConfigPath   string
	AuditLogPath string
	MetricsAddr  string
	Logger       *slog.Logger
}

// Server implements the PolicyGate gRPC service.
type Server struct {
	pb.UnimplementedPolicyGateServer

	mu         sync.Mutex
	gate       *gate.Gate
	metrics    *metrics.Metrics
	logger     *slog.Logger
	configPath string
	port       int

	grpcServer    *grpc.Server
	metricsServer *http.Server
}

// New creates a gRPC server with loaded configuration and an open gate.
func New(cfg Config) (*Server, error) {
	settings, hash, err := config.LoadWithHash(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	auditPath := cfg.AuditLogPath
	if auditPath == "" {
		auditPath = settings.AuditLog
	}
	port := cfg.Port
	if port == 0 {
		port = settings.Server.Port
	}
	metricsAddr := cfg.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = settings.Server.MetricsAddr
	}

	m := metrics.New()
	g, err := gate.New(gate.Config{
		Jurisdiction: settings.Jurisdiction,
		ConfigHash:   hash,
		AuditLogPath: auditPath,
		Metrics:      m,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gate: %w", err)
	}

	s := &Server{
		gate:       g,
		metrics:    m,
		logger:     logger,
		configPath: cfg.ConfigPath,
		port:       port,
		grpcServer: grpc.NewServer(),
	}
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		s.metricsServer = &http.Server{
			Addr:              metricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	pb.RegisterPolicyGateServer(s.grpcServer, s)
	return s, nil
}

// Port returns the configured gRPC listen port.
func (s *Server) Port() int {
	return s.port
}

// Gate returns the gate the server evaluates with.
func (s *Server) Gate() *gate.Gate {
	return s.gate
}

// Serve starts the metrics endpoint (if configured) and the gRPC server on
// the configured port. Blocks until stopped.
func (s *Server) Serve() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	return s.ServeOn(lis)
}

// ServeOn starts the gRPC server on the given listener.
func (s *Server) ServeOn(lis net.Listener) error {
	if s.metricsServer != nil {
		go func() {
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics endpoint stopped", "addr", s.metricsServer.Addr, "error", err)
			}
		}()
	}
	s.logger.Info("policygate server listening", "addr", lis.Addr().String(), "jurisdiction", s.gate.Jurisdiction())
	return s.grpcServer.Serve(lis)
}

// GracefulStop gracefully shuts down the gRPC server and metrics endpoint.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
	if s.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.metricsServer.Shutdown(ctx)
	}
}

// Close cleans up resources.
func (s *Server) Close() error {
	return s.gate.Close()
}

// ReloadConfig re-reads the config file and applies the jurisdiction.
// On error the previous settings stay in effect.
func (s *Server) ReloadConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, hash, err := config.LoadWithHash(s.configPath)
	s.metrics.RecordReload(err)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	s.gate.SetJurisdiction(settings.Jurisdiction, hash)
	return nil
}

// Check implements the Check RPC.
func (s *Server) Check(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := pb.DecodeCheckRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	d := s.gate.Check(ctx, in.Task, in.Jurisdiction)
	return pb.CheckResponse{
		CheckID:      d.ID,
		Compliant:    d.Compliant,
		Violations:   d.Violations,
		Jurisdiction: d.Jurisdiction,
		Sensitive:    d.Sensitive,
	}.ToStruct(), nil
}

// PromptBlock implements the PromptBlock RPC.
func (s *Server) PromptBlock(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(constitution.PromptBlock()), nil
}

// Rules implements the Rules RPC. An empty or "all" tier returns every tier.
func (s *Server) Rules(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	rules, err := constitution.RulesByLabel(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return pb.EncodeRules(rules), nil
}
