package loader

import (
	"fmt"
	"regexp"
	"time"
)

// Source exports carry their snapshot date in the filename as dd_mm_yyyy,
// e.g. "Club_Performance_12_03_2026.csv".
var filenameDate = regexp.MustCompile(`(\d{2})_(\d{2})_(\d{4})`)

// UpdateDate extracts and reformats the snapshot date embedded in a source
// filename. Returns "" when the filename carries no date.
func UpdateDate(filename string) string {
	m := filenameDate.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	parsed, err := time.Parse("02_01_2006", fmt.Sprintf("%s_%s_%s", m[1], m[2], m[3]))
	if err != nil {
		return ""
	}
	return parsed.Format("2 January 2006")
}
