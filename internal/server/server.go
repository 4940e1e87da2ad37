// Package server implements the HTTP, WebSocket and MCP server for
// palettepro serve.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// TokenEnvVar names the environment variable holding the API bearer token.
const TokenEnvVar = "PALETTEPRO_TOKEN"

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// Quiet disables HTTP access logging.
	Quiet bool
	// Token, when set, is required as a bearer token on API and MCP routes.
	Token string
	// GenerationDelay is how long the WebSocket stream pauses between
	// announcing a batch and delivering it.
	GenerationDelay time.Duration
	// Jitter is applied by the related-colors endpoint.
	Jitter harmony.Jitter
	// Register records the server in the instances file while it runs.
	Register bool
	// LogPath is published in the instances file for "palettepro logs".
	LogPath string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:            config.DefaultHost,
		Port:            config.DefaultPort,
		GenerationDelay: 800 * time.Millisecond,
		Jitter:          harmony.DefaultJitter,
	}
}

// Server serves the REST API, the WebSocket generation stream and MCP over SSE.
type Server struct {
	config    Config
	gallery   *gallery.Builder
	mcp       *MCPServer
	auth      *BearerAuth
	router    chi.Router
	startedAt time.Time
}

// New creates a server that draws palettes from b.
func New(b *gallery.Builder, cfg Config) *Server {
	if b == nil {
		b = gallery.NewBuilder(nil, nil)
	}
	if cfg.Jitter == (harmony.Jitter{}) {
		cfg.Jitter = harmony.DefaultJitter
	}
	s := &Server{
		config:    cfg,
		gallery:   b,
		mcp:       NewMCPServer(b, cfg.Jitter),
		auth:      NewBearerAuth(cfg.Token),
		startedAt: time.Now(),
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)
	if !s.config.Quiet {
		r.Use(middleware.RequestLogger(accessLog{}))
	}
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if s.auth.Enabled() {
		tuilog.Log.Info("API authentication enabled")
	} else {
		tuilog.Log.Warn("API running without authentication", "hint", "set "+TokenEnvVar+" to secure")
	}

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/categories", s.handleGetCategories)
			r.Get("/palettes", s.handleGetPalettes)
			r.Get("/palettes/random", s.handleGetRandomPalette)
			r.Get("/colors/{hex}/related", s.handleGetRelated)
			r.Get("/colors/{hex}/shades", s.handleGetShades)
			r.Get("/colors/{hex}/harmonics", s.handleGetHarmonics)
			r.Get("/search/resolve", s.handleResolveSearch)
			r.Post("/search/match", s.handleMatchSearch)
			r.Get("/export", s.handleExport)
			r.Get("/themes", s.handleGetThemes)
			r.Get("/ws", s.handleWS)
		})

		r.Handle("/mcp", s.mcp.SSEHandler())
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>palettepro</title></head>
<body>
<h1>palettepro</h1>
<p>REST API: <a href="/api/v1/palettes">/api/v1/palettes</a></p>
<p>Generation stream: <code>/api/v1/ws</code></p>
<p>MCP (SSE): <code>/mcp</code></p>
</body>
</html>`))
	})

	return r
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
}

// ListenAndServe starts the server and blocks until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.config.Register && s.config.Port != 0 {
		if existing := config.FindInstanceByPort(s.config.Port); existing != nil {
			return fmt.Errorf("port %d is already in use by palettepro %s (PID %d, started %s)",
				s.config.Port, existing.Type, existing.PID, existing.StartedAt.Format(time.RFC3339))
		}
	}

	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// Update port if it was auto-assigned
	if s.config.Port == 0 {
		s.config.Port = ln.Addr().(*net.TCPAddr).Port
	}

	if s.config.Register {
		inst := config.Instance{
			Type:      config.InstanceServe,
			PID:       os.Getpid(),
			Port:      s.config.Port,
			Host:      s.config.Host,
			Auth:      s.auth.Enabled(),
			LogPath:   s.config.LogPath,
			StartedAt: s.startedAt,
		}
		if err := config.RegisterInstance(inst); err != nil {
			tuilog.Log.Warn("Failed to register server instance", "error", err)
		}
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		if s.config.Register {
			config.UnregisterInstance(os.Getpid())
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	tuilog.Log.Info("Server listening", "addr", s.Addr())
	fmt.Printf("palettepro server running at http://%s\n", s.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
