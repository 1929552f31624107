package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

const (
	Name    = "jobboard"
	Version = "0.2.0"

	StreamPath = "/mcp/stream"
	APIPrefix  = "/api/"
)

// Server serves the MCP stream, the REST API and a health probe on one listener
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs the HTTP server; api may be nil to serve MCP only
func NewServer(log *logging.Logger, cfg config.Config, svc job.Service, exporter *export.SheetsExporter, api http.Handler) *Server {
	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           NewHandler(log, svc, exporter, api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		srv:    httpSrv,
	}
}

// NewMCPServer builds the SDK server with every jobboard tool registered
func NewMCPServer(log *logging.Logger, svc job.Service, exporter *export.SheetsExporter) *sdkmcp.Server {
	mcpServer := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    Name,
		Version: Version,
	}, nil)

	tools.Register(mcpServer, log.Named("tools"),
		tools.WithJobTools(svc),
		tools.WithSavedTools(svc),
		tools.WithSheetsExport(svc, exporter),
	)
	return mcpServer
}

// NewHandler routes the MCP stream, /healthz and, when set, the REST API
func NewHandler(log *logging.Logger, svc job.Service, exporter *export.SheetsExporter, api http.Handler) http.Handler {
	mcpServer := NewMCPServer(log, svc, exporter)

	stream := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(StreamPath, stream)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if api != nil {
		mux.Handle(APIPrefix, api)
	}
	return mux
}

// Addr is the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr, "mcp", StreamPath, "api", APIPrefix)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
