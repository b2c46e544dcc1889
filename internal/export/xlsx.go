// Package export renders ranked leaderboards to xlsx workbooks and CSV.
package export

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

var headerRow = []string{
	"Rank", "Club Number", "Club Name", "Tier Points", "Grand Total",
	"Education", "Leadership", "Operations", "Top 3",
}

// WriteWorkbook writes one sheet per cohort and tier plus an overall
// sheet per cohort, with top-3 rows carrying a highlight fill.
func WriteWorkbook(path string, cards []model.ScoreCard, mode scoring.Mode) error {
	f := xlsx.NewFile()

	for _, cohort := range model.Cohorts() {
		entries := scoring.Rank(cards, cohort, scoring.MetricGrandTotal, mode)
		if err := addSheet(f, fmt.Sprintf("%s - Overall", cohort.DisplayName()), entries); err != nil {
			return err
		}
		for _, tier := range model.Tiers() {
			entries := scoring.Rank(cards, cohort, scoring.TierMetric(tier), mode)
			name := fmt.Sprintf("%s - %s", cohort.DisplayName(), tier.DisplayName())
			if err := addSheet(f, name, entries); err != nil {
				return err
			}
		}
	}

	return eris.Wrapf(f.Save(path), "export: save workbook %s", path)
}

func addSheet(f *xlsx.File, name string, entries []model.Entry) error {
	// Sheet names cap at 31 characters in the xlsx format.
	if len(name) > 31 {
		name = name[:31]
	}
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	headerStyle := boldStyle()
	for _, col := range headerRow {
		cell := header.AddCell()
		cell.SetString(col)
		cell.SetStyle(headerStyle)
	}

	highlight := highlightStyle()
	for _, e := range entries {
		row := sheet.AddRow()
		cells := []string{
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
		for _, v := range cells {
			cell := row.AddCell()
			cell.SetString(v)
			if e.TopThree {
				cell.SetStyle(highlight)
			}
		}
	}
	return nil
}

func topThreeLabel(top bool) string {
	if top {
		return "Yes"
	}
	return ""
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Font.Bold = true
	style.ApplyFont = true
	return style
}

func highlightStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Fill = *xlsx.NewFill("solid", "FFF2CC", "FFF2CC")
	style.ApplyFill = true
	return style
}
