package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

func TestScoreEducation_PerUnitWithCaps(t *testing.T) {
	rules := config.DefaultRules()
	rules.Caps = config.Caps{L1: 4, L2: 2, L3: 2}

	pts := ScoreEducation([]model.Club{{
		Number:     1,
		Level1s:    6, // over the cap of 4
		Level2s:    1,
		AddLevel2s: 3, // combined 4, capped at 2
		Level3s:    1,
	}}, rules)

	require.Contains(t, pts, 1)
	assert.Equal(t, 4*rules.Points.L1PerUnit, pts[1].L1)
	assert.Equal(t, 2*rules.Points.L2PerUnit, pts[1].L2)
	assert.Equal(t, 1*rules.Points.L3PerUnit, pts[1].L3)
}

func TestScoreEducation_UncappedL1(t *testing.T) {
	rules := config.DefaultRules()
	rules.Caps.L1 = 0

	pts := ScoreEducation([]model.Club{{Number: 1, Level1s: 9}}, rules)
	assert.Equal(t, 9*rules.Points.L1PerUnit, pts[1].L1)
}

func TestScoreEducation_PresenceOnlyL4L5(t *testing.T) {
	rules := config.DefaultRules()

	pts := ScoreEducation([]model.Club{
		{Number: 1, Level4s: 3, AddLevel4s: 2},
		{Number: 2},
	}, rules)

	assert.Equal(t, rules.Points.L4, pts[1].L4)
	assert.Equal(t, rules.Points.L5, pts[1].L5)
	assert.Zero(t, pts[2].L4)
	assert.Zero(t, pts[2].L5)
}

func TestScoreEducation_NegativeCountersScoreZero(t *testing.T) {
	pts := ScoreEducation([]model.Club{{Number: 1, Level1s: -2}}, config.DefaultRules())
	assert.Zero(t, pts[1].L1)
}

func TestScoreTraining_Threshold(t *testing.T) {
	rules := config.DefaultRules()

	pts := ScoreTraining([]model.Club{
		{Number: 1, OfficersTrainedR1: 7, OfficersTrainedR2: 6},
		{Number: 2, OfficersTrainedR1: 0, OfficersTrainedR2: 8},
	}, rules)

	assert.Equal(t, rules.Points.COTRound, pts[1].Round1)
	assert.Zero(t, pts[1].Round2)
	assert.Zero(t, pts[2].Round1)
	assert.Equal(t, rules.Points.COTRound, pts[2].Round2)
}
