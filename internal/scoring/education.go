package scoring

import (
	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// EducationCounters holds the roster-derived education points for one club.
type EducationCounters struct {
	L1 int
	L2 int
	L3 int
	L4 int
	L5 int
}

// ScoreEducation converts the roster's cumulative level counters into
// education points. L1-L3 score per unit with an optional cap; L4 and L5
// are presence-only awards regardless of how many completions the club
// reports.
func ScoreEducation(clubs []model.Club, rules config.RuleSet) map[int]EducationCounters {
	out := make(map[int]EducationCounters, len(clubs))
	for _, c := range clubs {
		if c.Number <= 0 {
			continue
		}
		out[c.Number] = EducationCounters{
			L1: capped(c.Level1s, rules.Caps.L1) * rules.Points.L1PerUnit,
			L2: capped(c.Level2s+c.AddLevel2s, rules.Caps.L2) * rules.Points.L2PerUnit,
			L3: capped(c.Level3s, rules.Caps.L3) * rules.Points.L3PerUnit,
			L4: flat(c.Level4s >= 1, rules.Points.L4),
			L5: flat(c.AddLevel4s >= 1, rules.Points.L5),
		}
	}
	return out
}

// capped limits n to cap units; cap zero means uncapped. Negative
// counters from malformed rows count as zero.
func capped(n, cap int) int {
	if n < 0 {
		return 0
	}
	if cap > 0 && n > cap {
		return cap
	}
	return n
}

// flat returns pts when the condition holds, else zero.
func flat(ok bool, pts int) int {
	if ok {
		return pts
	}
	return 0
}
