package scoring

import (
	"github.com/district91/leaderboard-cli/internal/model"
)

// Delta isolates single-quarter progress from two cumulative year-to-date
// performance snapshots: each numeric counter becomes current minus
// prior. A club absent from the prior snapshot is newly chartered and
// keeps its raw current counters. Non-numeric identity and status
// columns come from the baseline snapshot unchanged; only newly
// chartered clubs carry them from the current one. Rows without a club
// number are dropped.
func Delta(current, prior []model.Club) []model.Club {
	baseline := make(map[int]model.Club, len(prior))
	for _, c := range prior {
		if c.Number <= 0 {
			continue
		}
		baseline[c.Number] = c
	}

	out := make([]model.Club, 0, len(current))
	for _, c := range current {
		if c.Number <= 0 {
			continue
		}
		p, known := baseline[c.Number] // zero value when newly chartered

		d := c
		if known {
			d.Name = p.Name
			d.SuccessPlan = p.SuccessPlan
		}
		d.Level1s = c.Level1s - p.Level1s
		d.Level2s = c.Level2s - p.Level2s
		d.AddLevel2s = c.AddLevel2s - p.AddLevel2s
		d.Level3s = c.Level3s - p.Level3s
		d.Level4s = c.Level4s - p.Level4s
		d.AddLevel4s = c.AddLevel4s - p.AddLevel4s
		d.OfficersTrainedR1 = c.OfficersTrainedR1 - p.OfficersTrainedR1
		d.OfficersTrainedR2 = c.OfficersTrainedR2 - p.OfficersTrainedR2
		out = append(out, d)
	}
	return out
}
