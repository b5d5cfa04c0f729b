package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/mvellek/eventdash/internal/middlewares"
	"github.com/mvellek/eventdash/server/database"
	"github.com/mvellek/eventdash/server/stats"
)

func New(ctx context.Context, cfg Config) (*Server, error) {
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: middlewares.AccessLog(middlewares.RateLimit(rate.Limit(cfg.Server.RequestsPerSecond), cfg.Server.RequestBurst)(mux)),
		},
		database: db,
		stats:    stats.New(db, cfg.Stats),
	}

	cache := middlewares.Cache(time.Duration(cfg.Server.CacheMaxAge))

	mux.HandleFunc("/", s.NotFound)
	mux.HandleFunc("GET /healthz", s.Healthz)
	mux.Handle("GET /api/stats/dashboard", cache(http.HandlerFunc(s.DashboardSummary)))
	mux.Handle("GET /api/stats/events/{event_id}", cache(http.HandlerFunc(s.EventSummary)))
	mux.Handle("GET /api/stats/tags", cache(http.HandlerFunc(s.TagDistribution)))
	mux.Handle("GET /api/stats/activity", cache(http.HandlerFunc(s.ActivityByYear)))
	mux.Handle("GET /api/stats/overview", cache(http.HandlerFunc(s.OverallSummary)))
	mux.Handle("GET /api/stats/trends", cache(http.HandlerFunc(s.EventTrends)))
	mux.Handle("GET /api/stats/top-clubs", cache(http.HandlerFunc(s.TopClubs)))
	mux.Handle("GET /api/stats/engagement", cache(http.HandlerFunc(s.UserEngagementLevels)))
	mux.Handle("GET /api/stats/top-events", cache(http.HandlerFunc(s.TopEvents)))
	mux.Handle("GET /api/stats/low-registration", cache(http.HandlerFunc(s.LowRegistrationEvents)))
	mux.Handle("GET /api/stats/organizations", cache(http.HandlerFunc(s.OrganizationActivity)))

	return s, nil
}

type Server struct {
	server   *http.Server
	database *database.Database
	stats    *stats.Engine
}

func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
	}

	if err := s.database.Close(); err != nil {
		slog.Error("Failed to close database", slog.Any("err", err))
	}
}

func (s *Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.database.Ping(r.Context()); err != nil {
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
