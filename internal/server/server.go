// Package server implements the Redpen HTTP server.
//
// The server wires the provider registry and correction service together,
// injects them into request contexts, and rebuilds them when the config
// file changes on disk.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/redpen/internal/api"
	"github.com/jackzampolin/redpen/internal/config"
	"github.com/jackzampolin/redpen/internal/correct"
	"github.com/jackzampolin/redpen/internal/providers"
	"github.com/jackzampolin/redpen/internal/server/endpoints"
	"github.com/jackzampolin/redpen/internal/svcctx"
)

// Config holds server configuration.
type Config struct {
	Host          string
	Port          string
	ConfigManager *config.Manager
	Logger        *slog.Logger
}

// Server is the Redpen HTTP server.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	registry   *providers.Registry
	endpoints  *api.Registry
	httpServer *http.Server

	mu       sync.RWMutex
	services *svcctx.Services
	running  bool
}

// New creates a server from the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, fmt.Errorf("config manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		registry:  providers.NewRegistry(),
		endpoints: api.NewRegistry(),
	}
	s.registry.SetLogger(logger)

	for _, ep := range endpoints.All() {
		s.endpoints.Register(ep)
	}

	s.registry.Reload(cfg.ConfigManager.Get().ToRegistryConfig())
	if err := s.rebuildServices(); err != nil {
		return nil, err
	}

	cfg.ConfigManager.OnChange(func(c *config.Config) {
		s.registry.Reload(c.ToRegistryConfig())
		if err := s.rebuildServices(); err != nil {
			s.logger.Error("service rebuild failed", "error", err)
		}
	})

	return s, nil
}

// rebuildServices resolves the configured correction provider and
// rebuilds the correction service. Called on startup and config reload.
func (s *Server) rebuildServices() error {
	cfg := s.cfg.ConfigManager.Get()

	client, err := s.registry.Get(cfg.Correction.Provider)
	if err != nil {
		return fmt.Errorf("correction provider %q is not configured: %w", cfg.Correction.Provider, err)
	}

	svc, err := correct.NewService(correct.ServiceConfig{
		Client:           client,
		Model:            cfg.Correction.Model,
		MaxAttempts:      cfg.Correction.MaxAttempts,
		RetryDelay:       cfg.Correction.RetryDelay,
		RequestTimeout:   cfg.Correction.RequestTimeout,
		BatchConcurrency: cfg.Correction.BatchConcurrency,
		Logger:           s.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build correction service: %w", err)
	}

	s.mu.Lock()
	s.services = &svcctx.Services{
		Corrector:     svc,
		Registry:      s.registry,
		ConfigManager: s.cfg.ConfigManager,
		Logger:        s.logger,
	}
	s.mu.Unlock()

	s.logger.Info("correction service ready",
		"provider", cfg.Correction.Provider,
		"model", cfg.Correction.Model)
	return nil
}

// withServices injects the current services into the request context.
func (s *Server) withServices(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		svcs := s.services
		s.mu.RUnlock()

		if svcs != nil {
			r = r.WithContext(svcctx.WithServices(r.Context(), svcs))
		}
		next(w, r)
	}
}

// requireInit rejects requests until the correction service is ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		ready := s.services != nil && s.services.Corrector != nil
		s.mu.RUnlock()

		if !ready {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"correction service not initialized"}`))
			return
		}
		next(w, r)
	}
}

// Handler builds the full HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.endpoints.RegisterRoutes(mux, s.requireInit)
	return s.loggingMiddleware(s.withServicesHandler(mux))
}

func (s *Server) withServicesHandler(next http.Handler) http.Handler {
	return s.withServices(next.ServeHTTP)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// IsRunning reports whether the server has been started.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Start runs the HTTP server until the context is canceled, then
// shuts it down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.Addr())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return err
}
