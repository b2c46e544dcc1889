package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/district91/leaderboard-cli/internal/model"
)

// WriteCSV writes ranked entries as CSV with the same column layout as
// the workbook sheets.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headerRow); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Rank),
			strconv.Itoa(e.ClubNumber),
			e.ClubName,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.GrandTotal),
			strconv.Itoa(e.EducationPts),
			strconv.Itoa(e.LeadershipPts),
			strconv.Itoa(e.OperationsPts),
			topThreeLabel(e.TopThree),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "export: write csv row for club %d", e.ClubNumber)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
