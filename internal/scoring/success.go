package scoring

import (
	"strings"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// ScoreSuccessPlan awards the club success plan points. Under the plain
// rule a club scores for any submission carrying a parseable date. Under
// the improvement rule (current program year) a club scores only when it
// answers yes now and did not answer yes in the prior period, so clubs
// are rewarded for closing the gap rather than for standing still.
//
// The roster's own success-plan flag is a second current signal: a club
// the district already marks yes scores even when it never filed the
// form. The form answer wins when both are present for a club.
func ScoreSuccessPlan(roster []model.Club, current, prior []model.CSPSubmission, rules config.RuleSet) map[int]int {
	priorYes := make(map[int]bool)
	for _, s := range prior {
		if s.Club.Number <= 0 {
			continue
		}
		if isYes(s.Answer) {
			priorYes[s.Club.Number] = true
		}
	}

	out := make(map[int]int)
	for _, s := range current {
		club := s.Club.Number
		if club <= 0 {
			continue
		}

		if rules.CSPImprovement {
			if isYes(s.Answer) && !priorYes[club] {
				out[club] = rules.Points.SuccessPlan
			} else if _, seen := out[club]; !seen {
				out[club] = 0
			}
			continue
		}

		if !ParseDate(s.SubmittedAt).IsZero() {
			out[club] = rules.Points.SuccessPlan
		} else if _, seen := out[club]; !seen {
			out[club] = 0
		}
	}

	for _, c := range roster {
		if c.Number <= 0 || !isYes(c.SuccessPlan) {
			continue
		}
		if _, seen := out[c.Number]; seen {
			continue
		}
		if rules.CSPImprovement && priorYes[c.Number] {
			out[c.Number] = 0
			continue
		}
		out[c.Number] = rules.Points.SuccessPlan
	}
	return out
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y") ||
		strings.EqualFold(strings.TrimSpace(answer), "yes")
}
