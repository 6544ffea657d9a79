// Package api provides the HTTP REST API server for earncal.
//
// It exposes the earnings resolution pipeline as JSON endpoints plus
// provider metadata, company news, and a small embedded dashboard.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/seenimoa/earncal/internal/config"
	"github.com/seenimoa/earncal/internal/earnings"
	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/internal/report"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
	"github.com/seenimoa/earncal/web"
)

// Version is reported by the health endpoint; set from the build info in main.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	registry *provider.Registry
	resolver *earnings.Resolver
	agg      *earnings.Aggregator
	log      *zap.Logger
	serveUI  bool // when true, serve the embedded dashboard at /
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, reg *provider.Registry, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	resolver := earnings.NewResolver(reg, log)
	agg := earnings.NewAggregator(resolver, earnings.WithDelay(cfg.Fetch.Delay))

	srv := &Server{
		cfg:      cfg,
		registry: reg,
		resolver: resolver,
		agg:      agg,
		log:      log,
		serveUI:  true,
	}

	srv.router = srv.buildRouter()
	return srv
}

// SetServeUI controls whether the embedded dashboard is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("http server error", zap.Error(err))
		}
	}()
	s.log.Info("server listening", zap.String("addr", addr))

	<-done
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Earnings pipeline
		r.Get("/earnings", s.handleEarnings)
		r.Get("/resolve/{ticker}", s.handleResolve)

		// News
		r.Get("/news/{ticker}", s.handleNews)

		// Provider metadata
		r.Get("/providers", s.handleProviders)

		// Configuration
		r.Get("/config", s.handleGetConfig)
		r.Get("/config/keys", s.handleGetConfigKeys)
	})

	// Serve embedded dashboard (with fallback to index.html)
	if s.serveUI {
		s.mountStatic(r, web.DistFS())
	}

	return r
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// mountStatic serves the embedded dashboard. Unknown paths fall back to
// index.html.
func (s *Server) mountStatic(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServerFS(distFS)

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		rPath := strings.TrimPrefix(r.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		f, err := distFS.Open(rPath)
		if err != nil {
			serveIndexHTML(w, distFS)
			return
		}
		f.Close()

		if rPath == "index.html" || strings.HasSuffix(rPath, ".html") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}

		fileServer.ServeHTTP(w, r)
	})
}

// serveIndexHTML reads and serves the embedded index.html.
func serveIndexHTML(w http.ResponseWriter, distFS fs.FS) {
	data, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "dashboard not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EarningsResponse is the payload for GET /api/v1/earnings.
type EarningsResponse struct {
	Results []models.ResolvedEarnings `json:"results"`
	Rows    []report.Row              `json:"rows"`
}

// ProvidersResponse is the payload for GET /api/v1/providers.
type ProvidersResponse struct {
	Providers []provider.ProviderInfo         `json:"providers"`
	Coverage  map[provider.ModelType][]string `json:"coverage"`
	Defaults  map[provider.ModelType]string   `json:"defaults"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := utils.NowEastern()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":  "ok",
			"version": Version,
			"date_et": utils.FormatDateEastern(now),
			"time_et": utils.FormatClockEastern(now),
		},
	})
}

// handleEarnings resolves a comma-separated ticker list through the same
// sequential aggregation the CLI uses.
func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	tickers := splitTickers(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		writeError(w, http.StatusBadRequest, "tickers query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	results := s.agg.Aggregate(ctx, tickers)

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: EarningsResponse{
			Results: results,
			Rows:    report.DisplayRows(results),
		},
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rec := s.resolver.Resolve(ctx, ticker)

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    rec,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	params := provider.QueryParams{
		provider.ParamSymbol: utils.NormalizeTicker(ticker),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if _, err := strconv.Atoi(limit); err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		params[provider.ParamLimit] = limit
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res, err := s.registry.FetchWithFallback(ctx, provider.ModelCompanyNews, params)
	if err != nil {
		if errors.Is(err, provider.ErrNoData) || errors.Is(err, provider.ErrTickerNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    res,
	})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	defaults := make(map[provider.ModelType]string)
	for _, m := range provider.AllModels() {
		if name, ok := s.registry.DefaultProvider(m); ok {
			defaults[m] = name
		}
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ProvidersResponse{
			Providers: s.registry.List(),
			Coverage:  s.registry.ModelCoverage(),
			Defaults:  defaults,
		},
	})
}

// ============================================================
// Helpers
// ============================================================

// splitTickers parses a comma-separated ticker list, dropping empty entries.
func splitTickers(raw string) []string {
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("failed to write JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
