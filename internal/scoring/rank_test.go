package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// cardWithTotal builds a scorecard whose grand total equals the given
// value, carried entirely in the mentorship category.
func cardWithTotal(name string, total int) model.ScoreCard {
	return model.ScoreCard{
		ClubNumber: 1000 + int(name[0]),
		ClubName:   name,
		Cohort:     model.CohortSpark,
		Leadership: model.LeadershipPoints{Mentorship: total},
	}
}

func TestRank_BoundaryTieInclusion(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Alpha", 100),
		cardWithTotal("Bravo", 90),
		cardWithTotal("Charlie", 80),
		cardWithTotal("Delta", 80),
		cardWithTotal("Echo", 70),
	}

	entries := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential)
	require.Len(t, entries, 5)

	// Sequential ranks with no gaps, ties broken by name.
	for i, want := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		assert.Equal(t, want, entries[i].ClubName)
		assert.Equal(t, i+1, entries[i].Rank)
	}

	// Delta ties Charlie's boundary score of 80, so four clubs qualify.
	var top []string
	for _, e := range entries {
		if e.TopThree {
			top = append(top, e.ClubName)
		}
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta"}, top)
}

func TestRank_ZeroScoresExcluded(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Alpha", 50),
		cardWithTotal("Bravo", 0),
	}

	entries := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alpha", entries[0].ClubName)
	assert.True(t, entries[0].TopThree)
}

func TestRank_FewerThanThreeAllQualify(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Alpha", 40),
		cardWithTotal("Bravo", 30),
	}

	entries := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].TopThree)
	assert.True(t, entries[1].TopThree)
}

func TestRank_EmptyCohort(t *testing.T) {
	entries := Rank(nil, model.CohortPinnacle, MetricGrandTotal, ModeSequential)
	assert.Empty(t, entries)
}

func TestRank_TierMetricTieBrokenByGrandTotal(t *testing.T) {
	a := cardWithTotal("Alpha", 30)
	a.Operations.MemberOnboarding = 10 // higher grand total
	b := cardWithTotal("Bravo", 30)

	entries := Rank([]model.ScoreCard{b, a}, model.CohortSpark, TierMetric(model.TierLeadership), ModeSequential)
	require.Len(t, entries, 2)
	assert.Equal(t, "Alpha", entries[0].ClubName)
	assert.Equal(t, 30, entries[0].Score)
	assert.Equal(t, 40, entries[0].GrandTotal)
}

func TestRank_DeterministicOnReruns(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Charlie", 50),
		cardWithTotal("Alpha", 50),
		cardWithTotal("Bravo", 50),
	}

	first := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential)
	for range 10 {
		assert.Equal(t, first, Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential))
	}
	assert.Equal(t, "Alpha", first[0].ClubName)
	assert.Equal(t, "Bravo", first[1].ClubName)
	assert.Equal(t, "Charlie", first[2].ClubName)
}

func TestRank_ConsecutiveRanksFromOne(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Alpha", 90),
		cardWithTotal("Bravo", 70),
		cardWithTotal("Charlie", 70),
		cardWithTotal("Delta", 10),
	}

	entries := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeSequential)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRank_DenseModeSharesRanks(t *testing.T) {
	cards := []model.ScoreCard{
		cardWithTotal("Alpha", 90),
		cardWithTotal("Bravo", 80),
		cardWithTotal("Charlie", 80),
		cardWithTotal("Delta", 70),
	}

	entries := Rank(cards, model.CohortSpark, MetricGrandTotal, ModeDense)
	require.Len(t, entries, 4)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2, entries[2].Rank) // tie shares the rank
	assert.Equal(t, 3, entries[3].Rank) // dense: no gap after the tie
	assert.True(t, entries[3].TopThree)
}

func TestRank_IgnoresOtherCohorts(t *testing.T) {
	spark := cardWithTotal("Alpha", 50)
	pinnacle := cardWithTotal("Bravo", 99)
	pinnacle.Cohort = model.CohortPinnacle

	entries := Rank([]model.ScoreCard{spark, pinnacle}, model.CohortSpark, MetricGrandTotal, ModeSequential)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alpha", entries[0].ClubName)
}

func TestRank_DefaultRulesBands(t *testing.T) {
	rules := config.DefaultRules()
	card := cardWithTotal("Alpha", 10)
	card.ActiveMembers = 16
	card.Cohort = Classify(card.ActiveMembers, rules)
	assert.Equal(t, model.CohortSpark, card.Cohort)
}
