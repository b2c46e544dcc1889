package scoring

import (
	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// ContestPoints holds the four contest-participation awards for one club.
type ContestPoints struct {
	Humorous      int
	TableTopics   int
	Evaluation    int
	International int
}

// ScoreContests awards the flat contest points per sub-type for any
// non-empty contest date. The humorous contest additionally requires the
// date to fall on or before the configured cutoff. A club submitting the
// form twice scores each contest at most once.
func ScoreContests(subs []model.ContestSubmission, rules config.RuleSet) map[int]ContestPoints {
	cutoff := rules.HumorousCutoffTime()
	out := make(map[int]ContestPoints)

	for _, s := range subs {
		club := s.Club.Number
		if club <= 0 {
			continue
		}
		pts := out[club]

		if d := ParseDate(s.Humorous); !d.IsZero() {
			if cutoff.IsZero() || !d.After(cutoff) {
				pts.Humorous = rules.Points.Contest
			}
		}
		if s.TableTopics != "" {
			pts.TableTopics = rules.Points.Contest
		}
		if s.Evaluation != "" {
			pts.Evaluation = rules.Points.Contest
		}
		if s.International != "" {
			pts.International = rules.Points.Contest
		}

		out[club] = pts
	}

	return out
}
