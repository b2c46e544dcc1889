// Package server exposes computed leaderboards over a JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// CardProvider supplies the current scoring run. Implementations may
// fetch fresh sources or replay cached snapshots; the server does not
// care which.
type CardProvider interface {
	Cards(ctx context.Context) ([]model.ScoreCard, error)
}

// Server wraps the chi router and its dependencies.
type Server struct {
	provider CardProvider
	rules    config.RuleSet
	cfg      config.ServerConfig
}

func New(provider CardProvider, rules config.RuleSet, cfg config.ServerConfig) *Server {
	return &Server{provider: provider, rules: rules, cfg: cfg}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/breakdown", s.handleBreakdown)
		r.Get("/winners", s.handleWinners)
	})
	return r
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.AllowedOrigins
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("starting leaderboard server", zap.String("addr", addr))

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down leaderboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
