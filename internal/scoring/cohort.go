package scoring

import (
	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// Classify maps an active-member count to its size cohort. Bands are
// inclusive on both bounds; a count outside every band maps to
// CohortUnknown, which is excluded from ranking.
func Classify(activeMembers int, rules config.RuleSet) model.Cohort {
	for i, band := range rules.CohortBands {
		if band.Contains(activeMembers) {
			return model.Cohort(i + 1)
		}
	}
	return model.CohortUnknown
}
