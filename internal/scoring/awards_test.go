package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

func award(club int, member, code string) model.AwardRecord {
	return model.AwardRecord{Club: model.ClubRef{Number: club}, Member: member, Code: code}
}

func TestScoreAwards_SuffixFamilies(t *testing.T) {
	rules := config.DefaultRules()
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM4"),
		award(1, "Grace", "DL5"),
		award(2, "Edsger", "DTM"),
	}, rules)

	assert.Equal(t, rules.Points.L4, pts[1].L4)
	assert.Equal(t, rules.Points.L5, pts[1].L5)
	assert.Zero(t, pts[1].DTM)
	assert.Equal(t, rules.Points.DTM, pts[2].DTM)
}

func TestScoreAwards_PresenceNotCount(t *testing.T) {
	rules := config.DefaultRules()
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM4"),
		award(1, "Grace", "VC4"),
		award(1, "Edsger", "DL4"),
	}, rules)

	// Three level-4 awards still score the flat value once.
	assert.Equal(t, rules.Points.L4, pts[1].L4)
}

func TestScoreAwards_TripleCrown_ConsecutiveLevels(t *testing.T) {
	rules := config.DefaultRules()
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM2"),
		award(1, "Ada", "PM3"),
		award(1, "Ada", "PM4"),
	}, rules)

	assert.Equal(t, rules.Points.TripleCrown, pts[1].TripleCrown)
}

func TestScoreAwards_TripleCrown_GapDoesNotQualify(t *testing.T) {
	rules := config.DefaultRules()
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM2"),
		award(1, "Ada", "PM4"),
	}, rules)

	assert.Zero(t, pts[1].TripleCrown)
}

func TestScoreAwards_TripleCrown_SingleMemberOnly(t *testing.T) {
	rules := config.DefaultRules()
	// Levels 2,3,4 spread across two members must not qualify.
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM2"),
		award(1, "Ada", "PM3"),
		award(1, "Grace", "PM4"),
	}, rules)

	assert.Zero(t, pts[1].TripleCrown)
}

func TestScoreAwards_TripleCrown_SinglePrefixOnly(t *testing.T) {
	rules := config.DefaultRules()
	// Consecutive levels across different code families must not qualify.
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "PM2"),
		award(1, "Ada", "DL3"),
		award(1, "Ada", "PM4"),
	}, rules)

	assert.Zero(t, pts[1].TripleCrown)
}

func TestScoreAwards_UnexpectedCodesInert(t *testing.T) {
	rules := config.DefaultRules()
	pts := ScoreAwards([]model.AwardRecord{
		award(1, "Ada", "???"),
		award(1, "Ada", "4PM"),
		award(1, "Ada", ""),
		award(0, "Ada", "PM4"), // missing club number: row dropped
	}, rules)

	assert.Zero(t, pts[1].L4)
	assert.Zero(t, pts[1].TripleCrown)
	assert.NotContains(t, pts, 0)
}

func TestScoreAwards_EmptyInput(t *testing.T) {
	pts := ScoreAwards(nil, config.DefaultRules())
	assert.Empty(t, pts)
}

func TestSplitAwardCode(t *testing.T) {
	prefix, level, ok := splitAwardCode("EH3")
	assert.True(t, ok)
	assert.Equal(t, "EH", prefix)
	assert.Equal(t, 3, level)

	_, _, ok = splitAwardCode("DTM")
	assert.False(t, ok)
	_, _, ok = splitAwardCode("42")
	assert.False(t, ok)
}
