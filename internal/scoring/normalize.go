// Package scoring implements the leaderboard core: category scorers, the
// point aggregator, cohort classification, ranking, and the quarter delta
// calculator. Every function here is pure and defensive: malformed rows
// are dropped, missing tables score zero, and nothing raises past the
// package boundary.
package scoring

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/district91/leaderboard-cli/internal/model"
)

// clubFieldSep separates name from number in the combined club field the
// submission forms produce ("Demo Club ---- 1234567").
const clubFieldSep = "----"

var foldCaser = cases.Fold()

// SplitClubField parses the combined "Club Name ---- ClubNumber" text
// into a ClubRef. A bare club number is also accepted. Returns false when
// no club number can be recovered; such rows are dropped by the scorers.
func SplitClubField(raw string) (model.ClubRef, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.ClubRef{}, false
	}

	if i := strings.LastIndex(raw, clubFieldSep); i >= 0 {
		name := strings.TrimSpace(raw[:i])
		num, err := strconv.Atoi(strings.TrimSpace(raw[i+len(clubFieldSep):]))
		if err != nil || num <= 0 {
			return model.ClubRef{}, false
		}
		return model.ClubRef{Number: num, Name: name}, true
	}

	// Upstream sometimes sends the number alone.
	if num, err := strconv.Atoi(raw); err == nil && num > 0 {
		return model.ClubRef{Number: num}, true
	}

	return model.ClubRef{}, false
}

// NormalizeKey canonicalizes a free-text identifier for matching: trimmed,
// case-folded, inner whitespace collapsed. Used for the legacy name-keyed
// joins that remain where upstream data carries no club number.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(foldCaser.String(strings.TrimSpace(s))), " ")
}

// dateLayouts covers the formats seen across the submission forms.
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2/1/06",
	"2 January 2006",
	"January 2, 2006",
	"2006/01/02",
}

// ParseDate parses a raw submission date. Returns the zero time when the
// text is empty or matches no known layout.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
