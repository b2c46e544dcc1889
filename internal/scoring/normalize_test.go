package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitClubField_Combined(t *testing.T) {
	ref, ok := SplitClubField("Demo Speakers ---- 1234567")
	require.True(t, ok)
	assert.Equal(t, 1234567, ref.Number)
	assert.Equal(t, "Demo Speakers", ref.Name)
}

func TestSplitClubField_BareNumber(t *testing.T) {
	ref, ok := SplitClubField("  445566 ")
	require.True(t, ok)
	assert.Equal(t, 445566, ref.Number)
	assert.Empty(t, ref.Name)
}

func TestSplitClubField_NameWithSeparatorInIt(t *testing.T) {
	// Only the last separator splits, so dashes inside the name survive.
	ref, ok := SplitClubField("North ---- South Club ---- 99")
	require.True(t, ok)
	assert.Equal(t, 99, ref.Number)
	assert.Equal(t, "North ---- South Club", ref.Name)
}

func TestSplitClubField_Malformed(t *testing.T) {
	for _, raw := range []string{"", "Just A Name", "Club ---- notanumber", "Club ---- -5", "0"} {
		_, ok := SplitClubField(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey("  Demo   SPEAKERS "), NormalizeKey("demo speakers"))
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-10-03", "3/10/2025", "3 October 2025", "October 3, 2025"} {
		assert.Equal(t, want, ParseDate(raw), "raw=%q", raw)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not a date").IsZero())
}
