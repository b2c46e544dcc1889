package scoring

import "github.com/district91/leaderboard-cli/internal/model"

// Winner is one incentive-qualifying entry: a top-three placement (with
// boundary ties included) in a cohort's overall or tier standings.
type Winner struct {
	Cohort model.Cohort `json:"cohort"`
	Tier   model.Tier   `json:"tier,omitempty"` // empty for overall standings
	Entry  model.Entry  `json:"entry"`
}

// Category returns the presentation label for the winner's standings.
func (w Winner) Category() string {
	if w.Tier == "" {
		return "Overall"
	}
	return w.Tier.DisplayName()
}

// Winners collects every incentive winner across all cohorts, ranking
// each cohort's overall standings and each tier's standings in
// sequential mode. Cards should already be filtered for eligibility.
func Winners(cards []model.ScoreCard) []Winner {
	var winners []Winner
	for _, cohort := range model.Cohorts() {
		for _, e := range Rank(cards, cohort, MetricGrandTotal, ModeSequential) {
			if e.TopThree {
				winners = append(winners, Winner{Cohort: cohort, Entry: e})
			}
		}
		for _, tier := range model.Tiers() {
			for _, e := range Rank(cards, cohort, TierMetric(tier), ModeSequential) {
				if e.TopThree {
					winners = append(winners, Winner{Cohort: cohort, Tier: tier, Entry: e})
				}
			}
		}
	}
	return winners
}
