package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/loader"
	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
	"github.com/district91/leaderboard-cli/internal/store"
)

// loadRules resolves the scoring rule document named by config.
func loadRules() (config.RuleSet, error) {
	rules, err := config.LoadRules(cfg.Rules.File)
	if err != nil {
		return config.RuleSet{}, err
	}
	return rules, rules.Validate()
}

// openStore opens the snapshot archive and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// runPipeline fetches all sources, resolves the prior success-plan
// snapshot for the improvement rule, optionally archives the fetched
// payloads, and aggregates score cards.
func runPipeline(ctx context.Context, saveSnapshots bool) ([]model.ScoreCard, config.RuleSet, loader.Result, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, config.RuleSet{}, loader.Result{}, err
	}

	res, err := loader.NewRemote(*cfg).Load(ctx)
	if err != nil {
		return nil, config.RuleSet{}, loader.Result{}, err
	}

	// The archive is optional for a plain scoring run: without it the
	// success-plan improvement rule treats every completed plan as new.
	st, err := openStore(ctx)
	if err != nil {
		zap.L().Warn("pipeline: snapshot archive unavailable", zap.Error(err))
	} else {
		defer st.Close()
		res.Inputs.CSPPrior = priorCSP(ctx, st, res.UpdateDates[model.SourceCSP])
		if saveSnapshots {
			archive(ctx, st, res)
		}
	}

	return scoring.Aggregate(res.Inputs, rules), rules, res, nil
}

// priorCSP returns the most recent archived success-plan table from an
// earlier update date, nil when none exists yet.
func priorCSP(ctx context.Context, st store.Store, currentUpdateDate string) []model.CSPSubmission {
	snap, err := st.LatestSnapshot(ctx, model.SourceCSP)
	if err != nil {
		zap.L().Warn("pipeline: load prior success plans", zap.Error(err))
		return nil
	}
	// Skip past an archived copy of the current revision.
	if snap != nil && snap.UpdateDate == currentUpdateDate {
		snap, err = st.PreviousSnapshot(ctx, model.SourceCSP, snap.FetchedAt)
		if err != nil {
			zap.L().Warn("pipeline: load prior success plans", zap.Error(err))
			return nil
		}
	}
	if snap == nil {
		return nil
	}

	var prior scoring.Inputs
	loader.ParseInto(&prior, model.SourceCSP, snap.Payload)
	return prior.CSP
}

// archive stores every fetched payload and the per-club counter rows.
func archive(ctx context.Context, st store.Store, res loader.Result) {
	now := time.Now().UTC()
	for _, raw := range res.Raws {
		err := st.SaveSnapshot(ctx, model.Snapshot{
			Source:     raw.Source,
			UpdateDate: raw.UpdateDate,
			Payload:    raw.Payload,
			FetchedAt:  now,
		})
		if err != nil {
			zap.L().Warn("pipeline: save snapshot",
				zap.String("source", string(raw.Source)),
				zap.Error(err))
		}
	}
	if perf := res.Inputs.Performance; len(perf) > 0 {
		if err := st.ArchiveClubs(ctx, res.UpdateDates[model.SourcePerformance], perf); err != nil {
			zap.L().Warn("pipeline: archive clubs", zap.Error(err))
		}
	}
}
