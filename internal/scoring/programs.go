package scoring

import (
	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// ScorePresence implements the shared "any row present" rule: every club
// with at least one submission row receives the flat point value, once.
func ScorePresence(subs []model.ProgramSubmission, points int) map[int]int {
	out := make(map[int]int)
	for _, s := range subs {
		if s.Club.Number <= 0 {
			continue
		}
		out[s.Club.Number] = points
	}
	return out
}

// MOTPoints holds the quarterly Moments of Truth awards for one club.
type MOTPoints struct {
	Q1 int
	Q3 int
}

// ScoreMOT awards the per-quarter session points when a club held a
// session inside that quarter's date window. Multiple sessions within one
// window still score the window once.
func ScoreMOT(subs []model.MOTSubmission, rules config.RuleSet) map[int]MOTPoints {
	out := make(map[int]MOTPoints)
	for _, s := range subs {
		club := s.Club.Number
		if club <= 0 {
			continue
		}
		pts := out[club]
		if rules.MOTQ1.Contains(s.SessionDate) {
			pts.Q1 = rules.Points.MOTQuarter
		}
		if rules.MOTQ3.Contains(s.SessionDate) {
			pts.Q3 = rules.Points.MOTQuarter
		}
		out[club] = pts
	}
	return out
}

// ScoreEnrollment awards the flat enrollment points to clubs where every
// member row reports enrolled. A club with no rows at all is absent from
// the result, not zero; the aggregator fills that in.
func ScoreEnrollment(rows []model.EnrollmentRecord, rules config.RuleSet) map[int]int {
	all := make(map[int]bool)
	for _, r := range rows {
		club := r.Club.Number
		if club <= 0 {
			continue
		}
		if _, seen := all[club]; !seen {
			all[club] = true
		}
		if !r.Enrolled {
			all[club] = false
		}
	}

	out := make(map[int]int, len(all))
	for club, enrolled := range all {
		out[club] = flat(enrolled, rules.Points.Enrollment)
	}
	return out
}
