package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

// table is a parsed CSV with case-insensitive header lookup.
type table struct {
	columns map[string]int
	rows    [][]string
}

// parseCSV reads all rows of a CSV payload. Rows with a mismatched field
// count are kept; lookups beyond row length return "".
func parseCSV(payload []byte) table {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var t table
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			zap.L().Warn("loader: csv read error, stopping parse", zap.Error(err))
			break
		}
		if first {
			first = false
			t.columns = make(map[string]int, len(record))
			for i, name := range record {
				t.columns[normalizeColumn(name)] = i
			}
			continue
		}
		t.rows = append(t.rows, record)
	}
	return t
}

func normalizeColumn(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// cell returns the named column's value in a row, "" when absent.
func (t table) cell(row []string, column string) string {
	i, ok := t.columns[normalizeColumn(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t table) cellInt(row []string, column string) int {
	raw := t.cell(row, column)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// clubRef resolves the club reference for a form row: a dedicated club
// number column when present, otherwise the combined "Select Your Club"
// field. Returns false when no club number can be recovered.
func (t table) clubRef(row []string) (model.ClubRef, bool) {
	if num := t.cellInt(row, "Club Number"); num > 0 {
		return model.ClubRef{Number: num, Name: t.cell(row, "Club Name")}, true
	}
	return scoring.SplitClubField(t.cell(row, "Select Your Club"))
}

// ParsePerformance converts the roster/performance snapshot CSV.
func ParsePerformance(payload []byte) []model.Club {
	t := parseCSV(payload)
	clubs := make([]model.Club, 0, len(t.rows))
	for _, row := range t.rows {
		num := t.cellInt(row, "Club Number")
		if num <= 0 {
			continue
		}
		clubs = append(clubs, model.Club{
			Number:            num,
			Name:              t.cell(row, "Club Name"),
			ActiveMembers:     t.cellInt(row, "Active Members"),
			Level1s:           t.cellInt(row, "Level 1s"),
			Level2s:           t.cellInt(row, "Level 2s"),
			AddLevel2s:        t.cellInt(row, "Add. Level 2s"),
			Level3s:           t.cellInt(row, "Level 3s"),
			Level4s:           t.cellInt(row, "Level 4s, Path Completions, or DTM Awards"),
			AddLevel4s:        t.cellInt(row, "Add. Level 4s, Path Completions, or DTM award"),
			OfficersTrainedR1: t.cellInt(row, "Off. Trained Round 1"),
			OfficersTrainedR2: t.cellInt(row, "Off. Trained Round 2"),
			SuccessPlan:       t.cell(row, "CSP"),
		})
	}
	return clubs
}

// ParseAwards converts the per-member educational award list.
func ParseAwards(payload []byte) []model.AwardRecord {
	t := parseCSV(payload)
	awards := make([]model.AwardRecord, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		awards = append(awards, model.AwardRecord{
			Club:   ref,
			Member: t.cell(row, "Member Name"),
			Code:   t.cell(row, "Award"),
			Date:   scoring.ParseDate(t.cell(row, "Date")),
		})
	}
	return awards
}

// ParseContests converts the contest-date submission form export.
func ParseContests(payload []byte) []model.ContestSubmission {
	t := parseCSV(payload)
	subs := make([]model.ContestSubmission, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		subs = append(subs, model.ContestSubmission{
			Club:          ref,
			Humorous:      t.cell(row, "Humorous Contest"),
			TableTopics:   t.cell(row, "TableTopics Contest"),
			Evaluation:    t.cell(row, "Evaluation Contest"),
			International: t.cell(row, "International Contest"),
		})
	}
	return subs
}

// ParseMOT converts the Moments of Truth session form export.
func ParseMOT(payload []byte) []model.MOTSubmission {
	t := parseCSV(payload)
	subs := make([]model.MOTSubmission, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		subs = append(subs, model.MOTSubmission{
			Club:        ref,
			SessionDate: scoring.ParseDate(t.cell(row, "Session Date")),
		})
	}
	return subs
}

// ParseCSP converts a club success plan form export.
func ParseCSP(payload []byte) []model.CSPSubmission {
	t := parseCSV(payload)
	subs := make([]model.CSPSubmission, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		subs = append(subs, model.CSPSubmission{
			Club:        ref,
			Answer:      t.cell(row, "CSP Completed"),
			SubmittedAt: t.cell(row, "Submission Date"),
		})
	}
	return subs
}

// ParseProgram converts a generic program-participation form export,
// where row presence is the signal scoring consumes.
func ParseProgram(payload []byte) []model.ProgramSubmission {
	t := parseCSV(payload)
	subs := make([]model.ProgramSubmission, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		subs = append(subs, model.ProgramSubmission{Club: ref})
	}
	return subs
}

// ParseEnrollment converts the per-member pathways enrollment export.
func ParseEnrollment(payload []byte) []model.EnrollmentRecord {
	t := parseCSV(payload)
	rows := make([]model.EnrollmentRecord, 0, len(t.rows))
	for _, row := range t.rows {
		ref, ok := t.clubRef(row)
		if !ok {
			continue
		}
		enrolled := strings.EqualFold(t.cell(row, "Enrolled"), "y") ||
			strings.EqualFold(t.cell(row, "Enrolled"), "yes")
		rows = append(rows, model.EnrollmentRecord{
			Club:     ref,
			Member:   t.cell(row, "Member Name"),
			Enrolled: enrolled,
		})
	}
	return rows
}
