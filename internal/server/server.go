// Package server serves analysis reports over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/internal/state"
)

// AnalyzeFunc produces a fresh report.
type AnalyzeFunc func(ctx context.Context) (*report.Report, error)

// Config holds configuration for the report server.
type Config struct {
	Addr    string
	Analyze AnalyzeFunc
	// History lists recorded runs at /api/history (optional)
	History state.Store
	Logger  *slog.Logger
}

// Server holds the latest report and serves it.
type Server struct {
	addr    string
	analyze AnalyzeFunc
	history state.Store
	logger  *slog.Logger

	mu     sync.RWMutex
	report *report.Report
}

// New creates a server. Call Refresh before serving to load the first report.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr:    cfg.Addr,
		analyze: cfg.Analyze,
		history: cfg.History,
		logger:  logger,
	}
}

// Refresh runs the analysis and replaces the served report. On failure the
// previous report stays in place.
func (s *Server) Refresh(ctx context.Context) error {
	if s.analyze == nil {
		return errors.New("no analysis configured")
	}
	rep, err := s.analyze(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.report = rep
	s.mu.Unlock()
	s.logger.Debug("report refreshed", "run_id", rep.RunID, "diagnostics", len(rep.Diagnostics))
	return nil
}

// Report returns the report being served, nil before the first Refresh.
func (s *Server) Report() *report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleFormat(report.FormatHTML))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/analysis", s.handleFormat(report.FormatJSON))
		r.Get("/report/{format}", func(w http.ResponseWriter, req *http.Request) {
			s.handleFormat(chi.URLParam(req, "format"))(w, req)
		})
		r.Post("/refresh", s.handleRefresh)
		r.Get("/history", s.handleHistory)
	})
	return r
}

var contentTypes = map[string]string{
	report.FormatHTML:     "text/html; charset=utf-8",
	report.FormatJSON:     "application/json",
	report.FormatMarkdown: "text/markdown; charset=utf-8",
}

func (s *Server) handleFormat(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rep := s.Report()
		if rep == nil {
			http.Error(w, "no analysis available", http.StatusServiceUnavailable)
			return
		}

		var buf bytes.Buffer
		if err := report.Write(&buf, format, rep); err != nil {
			if errors.Is(err, report.ErrUnknownFormat) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			s.logger.Error("rendering report", "format", format, "error", err)
			http.Error(w, "rendering failed", http.StatusInternalServerError)
			return
		}

		ct, ok := contentTypes[format]
		if !ok {
			ct = "text/plain; charset=utf-8"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, req *http.Request) {
	if err := s.Refresh(req.Context()); err != nil {
		s.logger.Error("refresh failed", "error", err)
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.handleFormat(report.FormatJSON)(w, req)
}

func (s *Server) handleHistory(w http.ResponseWriter, req *http.Request) {
	if s.history == nil {
		http.Error(w, "history is disabled", http.StatusNotFound)
		return
	}
	limit := 20
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := s.history.ListRuns(req.Context(), limit)
	if err != nil {
		s.logger.Error("listing runs", "error", err)
		http.Error(w, "listing runs failed", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*state.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(runs); err != nil {
		s.logger.Error("encoding runs", "error", err)
	}
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("serving report", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down report server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
