package scoring

import (
	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// TrainingPoints holds the officer-training points for one club.
type TrainingPoints struct {
	Round1 int
	Round2 int
}

// ScoreTraining awards the flat club-officer-training points per round
// when at least the threshold number of officers completed that round.
func ScoreTraining(clubs []model.Club, rules config.RuleSet) map[int]TrainingPoints {
	out := make(map[int]TrainingPoints, len(clubs))
	for _, c := range clubs {
		if c.Number <= 0 {
			continue
		}
		out[c.Number] = TrainingPoints{
			Round1: flat(c.OfficersTrainedR1 >= rules.COTThreshold, rules.Points.COTRound),
			Round2: flat(c.OfficersTrainedR2 >= rules.COTThreshold, rules.Points.COTRound),
		}
	}
	return out
}
