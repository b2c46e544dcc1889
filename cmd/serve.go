package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/loader"
	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
	"github.com/district91/leaderboard-cli/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve leaderboards over a JSON API",
	Long: `Starts an HTTP server exposing /health, /api/leaderboard,
/api/breakdown, and /api/winners. Source tables are refetched when the
cached scoring run goes stale.`,
	RunE: runServeCmd,
}

func init() {
	serveCmd.Flags().Duration("refresh", 15*time.Minute, "how long a scoring run stays fresh")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}
	if err := cfg.Validate("serve"); err != nil {
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}

	refresh, _ := cmd.Flags().GetDuration("refresh")
	provider := &cachingProvider{rules: rules, ttl: refresh}

	return server.New(provider, rules, cfg.Server).ListenAndServe(ctx)
}

// cachingProvider recomputes score cards at most once per ttl. A failed
// refresh keeps serving the previous run when one exists.
type cachingProvider struct {
	rules config.RuleSet
	ttl   time.Duration

	mu        sync.Mutex
	cards     []model.ScoreCard
	refreshed time.Time
}

func (p *cachingProvider) Cards(ctx context.Context) ([]model.ScoreCard, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cards != nil && time.Since(p.refreshed) < p.ttl {
		return p.cards, nil
	}

	res, err := loader.NewRemote(*cfg).Load(ctx)
	if err != nil {
		if p.cards != nil {
			zap.L().Warn("serve: refresh failed, serving stale run", zap.Error(err))
			return p.cards, nil
		}
		return nil, err
	}

	p.cards = scoring.Aggregate(res.Inputs, p.rules)
	p.refreshed = time.Now()
	return p.cards, nil
}
