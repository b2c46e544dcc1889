// Package loader fetches source exports and parses them into typed
// records. Each source is loaded independently; a failed or malformed
// source degrades to an empty table rather than failing the run.
package loader

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

// Fetcher retrieves a raw payload from a URL, returning the body and the
// server-reported filename when one is available.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, filename string, err error)
}

// Raw is one fetched source payload before parsing.
type Raw struct {
	Source     model.Source
	Payload    []byte
	Filename   string
	UpdateDate string
}

// Result is the parsed output of a full source load.
type Result struct {
	Inputs scoring.Inputs
	// UpdateDates maps each loaded source to the snapshot date embedded
	// in its filename, "" when the source carried none.
	UpdateDates map[model.Source]string
	// Raws holds the fetched payloads so callers can archive them.
	Raws []Raw
}

// Remote fetches every configured source concurrently.
type Remote struct {
	sources config.SourcesConfig
	http    Fetcher
	ftp     Fetcher
}

func NewRemote(cfg config.Config) *Remote {
	return &Remote{
		sources: cfg.Sources,
		http:    NewHTTPFetcher(cfg.Fetch),
		ftp:     NewFTPFetcher(cfg.Fetch),
	}
}

// Load fetches and parses all known sources. Individual source failures
// are logged and leave that source empty; Load only errors when the
// context is cancelled.
func (r *Remote) Load(ctx context.Context) (Result, error) {
	res := Result{UpdateDates: make(map[model.Source]string, len(model.AllSources()))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, source := range model.AllSources() {
		g.Go(func() error {
			raw, err := r.loadOne(gctx, source)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("loader: source unavailable, continuing with empty table",
					zap.String("source", string(source)),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			res.UpdateDates[source] = raw.UpdateDate
			res.Raws = append(res.Raws, raw)
			applySource(&res.Inputs, source, raw.Payload)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, eris.Wrap(err, "loader: load sources")
	}
	return res, nil
}

func (r *Remote) loadOne(ctx context.Context, source model.Source) (Raw, error) {
	url := r.sources.Resolve(string(source))
	if url == "" {
		return Raw{}, eris.Errorf("loader: source %q has no configured URL", source)
	}
	fetcher := r.http
	if strings.HasPrefix(url, "ftp://") {
		fetcher = r.ftp
	}
	body, filename, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return Raw{}, err
	}
	return Raw{
		Source:     source,
		Payload:    body,
		Filename:   filename,
		UpdateDate: UpdateDate(filename),
	}, nil
}

// applySource routes one payload into the matching Inputs field.
func applySource(in *scoring.Inputs, source model.Source, payload []byte) {
	switch source {
	case model.SourcePerformance:
		in.Performance = ParsePerformance(payload)
	case model.SourceAwards:
		in.Awards = ParseAwards(payload)
	case model.SourceContests:
		in.Contests = ParseContests(payload)
	case model.SourceMOT:
		in.MOT = ParseMOT(payload)
	case model.SourceCSP:
		in.CSP = ParseCSP(payload)
	case model.SourceMentorship:
		in.Mentorship = ParseProgram(payload)
	case model.SourcePCC:
		in.PCC = ParseProgram(payload)
	case model.SourceDCP:
		in.DCP = ParseProgram(payload)
	case model.SourceSTH:
		in.STH = ParseProgram(payload)
	case model.SourceQI:
		in.QI = ParseProgram(payload)
	case model.SourceOnboarding:
		in.Onboarding = ParseProgram(payload)
	case model.SourceEnrollment:
		in.Enrollment = ParseEnrollment(payload)
	}
}

// ParseInto parses a stored payload for a source into Inputs, used when
// replaying archived snapshots instead of fetching.
func ParseInto(in *scoring.Inputs, source model.Source, payload []byte) {
	applySource(in, source, payload)
}
