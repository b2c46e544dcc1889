package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

func TestScoreTraining(t *testing.T) {
	rules := config.DefaultRules()
	clubs := []model.Club{
		{Number: 1234, OfficersTrainedR1: 7, OfficersTrainedR2: 6},
		{Number: 5678, OfficersTrainedR1: 4, OfficersTrainedR2: 7},
		{Number: 9001, OfficersTrainedR1: 0, OfficersTrainedR2: 0},
		{Number: 0, OfficersTrainedR1: 7}, // malformed identifier, dropped
	}

	got := ScoreTraining(clubs, rules)

	assert.Equal(t, TrainingPoints{Round1: 20, Round2: 0}, got[1234])
	assert.Equal(t, TrainingPoints{Round1: 0, Round2: 20}, got[5678])
	assert.Equal(t, TrainingPoints{}, got[9001])
	assert.NotContains(t, got, 0)
	assert.Len(t, got, 3)
}

func TestScoreTraining_ThresholdIsInclusive(t *testing.T) {
	rules := config.DefaultRules()
	rules.COTThreshold = 4

	got := ScoreTraining([]model.Club{{Number: 77, OfficersTrainedR1: 4}}, rules)
	assert.Equal(t, 20, got[77].Round1)
}
