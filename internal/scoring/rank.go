package scoring

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/district91/leaderboard-cli/internal/model"
)

// Mode selects the rank-assignment behavior. The incentive leaderboards
// use ModeSequential; ModeDense reproduces the legacy roster view where
// clubs on equal scores share a rank number. The two are deliberately
// distinct and must not be conflated.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeDense      Mode = "dense"
)

// Metric names the score a leaderboard ranks by: a tier total or the
// grand total.
type Metric string

const MetricGrandTotal Metric = "grand_total"

// TierMetric converts a tier into its ranking metric.
func TierMetric(t model.Tier) Metric { return Metric(t) }

// topN is the incentive boundary: clubs at or above the Nth composite key
// qualify.
const topN = 3

var nameCollator = collate.New(language.English)

// sortKey is the composite ranking key: primary score, then grand total,
// then club name ascending as the final deterministic tie-break.
type sortKey struct {
	score int
	grand int
}

func (k sortKey) atLeast(o sortKey) bool {
	if k.score != o.score {
		return k.score > o.score
	}
	return k.grand >= o.grand
}

// Rank orders the given cohort's clubs by the metric and assigns ranks.
// Clubs scoring zero in the metric receive no rank and never qualify for
// the incentive set. Cohorts with zero or one qualifying club degrade to
// however many entries exist.
func Rank(cards []model.ScoreCard, cohort model.Cohort, metric Metric, mode Mode) []model.Entry {
	ranked := make([]model.ScoreCard, 0, len(cards))
	for _, c := range cards {
		if c.Cohort == cohort && metricScore(c, metric) > 0 {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := keyOf(ranked[i], metric), keyOf(ranked[j], metric)
		if a.score != b.score {
			return a.score > b.score
		}
		if a.grand != b.grand {
			return a.grand > b.grand
		}
		if cmp := nameCollator.CompareString(ranked[i].ClubName, ranked[j].ClubName); cmp != 0 {
			return cmp < 0
		}
		return ranked[i].ClubNumber < ranked[j].ClubNumber
	})

	entries := make([]model.Entry, len(ranked))
	for i, c := range ranked {
		entries[i] = model.Entry{
			ClubNumber:    c.ClubNumber,
			ClubName:      c.ClubName,
			Cohort:        c.Cohort,
			Score:         metricScore(c, metric),
			GrandTotal:    c.GrandTotal(),
			EducationPts:  c.Education.Total(),
			LeadershipPts: c.Leadership.Total(),
			OperationsPts: c.Operations.Total(),
		}
	}

	switch mode {
	case ModeDense:
		assignDenseRanks(entries, ranked, metric)
	default:
		assignSequentialRanks(entries, ranked, metric)
	}

	return entries
}

// assignSequentialRanks numbers every entry 1..n in sorted order, then
// marks the incentive set: rank <= 3, plus any club whose composite key
// ties the key at the rank-3 position (boundary tie inclusion, so the
// top set may hold more than three clubs).
func assignSequentialRanks(entries []model.Entry, ranked []model.ScoreCard, metric Metric) {
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if len(entries) == 0 {
		return
	}

	if len(entries) <= topN {
		for i := range entries {
			entries[i].TopThree = true
		}
		return
	}

	boundary := keyOf(ranked[topN-1], metric)
	for i := range entries {
		entries[i].TopThree = entries[i].Rank <= topN || keyOf(ranked[i], metric).atLeast(boundary)
	}
}

// assignDenseRanks gives clubs with equal composite keys the same rank,
// with no gaps after ties (legacy statistical ranking).
func assignDenseRanks(entries []model.Entry, ranked []model.ScoreCard, metric Metric) {
	rank := 0
	var prev sortKey
	for i := range entries {
		key := keyOf(ranked[i], metric)
		if i == 0 || key != prev {
			rank++
			prev = key
		}
		entries[i].Rank = rank
		entries[i].TopThree = rank <= topN
	}
}

func keyOf(c model.ScoreCard, metric Metric) sortKey {
	return sortKey{score: metricScore(c, metric), grand: c.GrandTotal()}
}

func metricScore(c model.ScoreCard, metric Metric) int {
	switch metric {
	case MetricGrandTotal, "":
		return c.GrandTotal()
	default:
		return c.TierTotal(model.Tier(metric))
	}
}
