package scoring

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// dtmCode is the highest-distinction award code.
const dtmCode = "DTM"

// AwardPoints holds the award-table-derived education flags for one club.
// Each field is presence-only: duplicate award rows never score twice.
type AwardPoints struct {
	L4          int
	L5          int
	DTM         int
	TripleCrown int
}

// ScoreAwards collapses the per-member award list into per-club point
// flags. Level 4 and 5 families match on the code's numeric suffix; DTM
// matches exactly; the triple crown requires a single member to hold
// three consecutive levels within one code prefix family. Codes that fit
// no expected pattern are inert.
func ScoreAwards(awards []model.AwardRecord, rules config.RuleSet) map[int]AwardPoints {
	out := make(map[int]AwardPoints)

	// (club, member, prefix) -> set of levels seen, for the triple crown.
	type memberFamily struct {
		club   int
		member string
		prefix string
	}
	levels := make(map[memberFamily]map[int]bool)

	for _, a := range awards {
		club := a.Club.Number
		if club <= 0 {
			continue
		}
		pts := out[club]

		code := strings.ToUpper(strings.TrimSpace(a.Code))
		if code == dtmCode {
			pts.DTM = rules.Points.DTM
			out[club] = pts
			continue
		}

		prefix, level, ok := splitAwardCode(code)
		if !ok {
			out[club] = pts
			continue
		}

		switch level {
		case 4:
			pts.L4 = rules.Points.L4
		case 5:
			pts.L5 = rules.Points.L5
		}

		key := memberFamily{club: club, member: NormalizeKey(a.Member), prefix: prefix}
		if levels[key] == nil {
			levels[key] = make(map[int]bool)
		}
		levels[key][level] = true

		out[club] = pts
	}

	for key, seen := range levels {
		if hasConsecutiveRun(seen, 3) {
			pts := out[key.club]
			pts.TripleCrown = rules.Points.TripleCrown
			out[key.club] = pts
		}
	}

	return out
}

// splitAwardCode breaks a code like "PM4" into its letter prefix and
// numeric level suffix. Codes without that shape report ok=false.
func splitAwardCode(code string) (prefix string, level int, ok bool) {
	i := len(code)
	for i > 0 && unicode.IsDigit(rune(code[i-1])) {
		i--
	}
	if i == 0 || i == len(code) {
		return "", 0, false
	}
	for _, r := range code[:i] {
		if !unicode.IsLetter(r) {
			return "", 0, false
		}
	}
	level, err := strconv.Atoi(code[i:])
	if err != nil || level <= 0 {
		return "", 0, false
	}
	return code[:i], level, true
}

// hasConsecutiveRun reports whether the level set contains n consecutive
// integers (e.g. {2,3,4} for n=3).
func hasConsecutiveRun(seen map[int]bool, n int) bool {
	for start := range seen {
		run := 0
		for seen[start+run] {
			run++
			if run >= n {
				return true
			}
		}
	}
	return false
}
