package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

const performanceCSV = `Club Number,Club Name,Active Members,Level 1s,Level 2s,Add. Level 2s,Level 3s,"Level 4s, Path Completions, or DTM Awards","Add. Level 4s, Path Completions, or DTM award",Off. Trained Round 1,Off. Trained Round 2,CSP
1234,Thames Speakers,22,5,2,1,1,1,0,7,4,Y
5678,River Orators,14,3,1,0,0,0,0,5,0,N
`

const awardsCSV = `Select Your Club,Member Name,Award,Date
Thames Speakers ---- 1234,Ada Lovelace,DL3,2025-10-02
River Orators ---- 5678,Grace Hopper,DTM,2025-11-12
not a club at all,Nobody,EH1,2025-09-01
`

func TestParsePerformance(t *testing.T) {
	clubs := ParsePerformance([]byte(performanceCSV))
	require.Len(t, clubs, 2)

	assert.Equal(t, 1234, clubs[0].Number)
	assert.Equal(t, "Thames Speakers", clubs[0].Name)
	assert.Equal(t, 22, clubs[0].ActiveMembers)
	assert.Equal(t, 5, clubs[0].Level1s)
	assert.Equal(t, 1, clubs[0].AddLevel2s)
	assert.Equal(t, 1, clubs[0].Level4s)
	assert.Equal(t, 7, clubs[0].OfficersTrainedR1)
	assert.Equal(t, "Y", clubs[0].SuccessPlan)
	assert.Equal(t, "N", clubs[1].SuccessPlan)
}

func TestParsePerformanceSkipsRowsWithoutClubNumber(t *testing.T) {
	payload := "Club Number,Club Name,Active Members\n,Ghost Club,10\nnot-a-number,Typo Club,12\n9001,Real Club,15\n"
	clubs := ParsePerformance([]byte(payload))
	require.Len(t, clubs, 1)
	assert.Equal(t, 9001, clubs[0].Number)
}

func TestParseAwardsResolvesCombinedClubField(t *testing.T) {
	awards := ParseAwards([]byte(awardsCSV))
	require.Len(t, awards, 2)

	assert.Equal(t, 1234, awards[0].Club.Number)
	assert.Equal(t, "Thames Speakers", awards[0].Club.Name)
	assert.Equal(t, "DL3", awards[0].Code)
	assert.False(t, awards[0].Date.IsZero())
	assert.Equal(t, "DTM", awards[1].Code)
}

func TestParseColumnsAreCaseInsensitive(t *testing.T) {
	payload := "CLUB NUMBER,club name,ACTIVE MEMBERS\n42,Shouty Club,19\n"
	clubs := ParsePerformance([]byte(payload))
	require.Len(t, clubs, 1)
	assert.Equal(t, 19, clubs[0].ActiveMembers)
}

func TestParseProgramKeepsOneRowPerSubmission(t *testing.T) {
	payload := "Timestamp,Select Your Club\n2025-10-01,Thames Speakers ---- 1234\n2025-10-08,Thames Speakers ---- 1234\n"
	subs := ParseProgram([]byte(payload))
	require.Len(t, subs, 2)
	assert.Equal(t, 1234, subs[0].Club.Number)
}

func TestParseEnrollment(t *testing.T) {
	payload := "Select Your Club,Member Name,Enrolled\n1234,Ada,Yes\n1234,Bob,no\n"
	rows := ParseEnrollment([]byte(payload))
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Enrolled)
	assert.False(t, rows[1].Enrolled)
}

func TestUpdateDate(t *testing.T) {
	assert.Equal(t, "12 March 2026", UpdateDate("Club_Performance_12_03_2026.csv"))
	assert.Equal(t, "1 July 2025", UpdateDate("awards_01_07_2025_final.csv"))
	assert.Equal(t, "", UpdateDate("awards.csv"))
	assert.Equal(t, "", UpdateDate("awards_99_99_2026.csv"))
}

func TestRemoteLoadFetchesAllConfiguredSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/performance":
			w.Header().Set("Content-Disposition", `attachment; filename="Club_Performance_12_03_2026.csv"`)
			fmt.Fprint(w, performanceCSV)
		case "/awards":
			fmt.Fprint(w, awardsCSV)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.Config{}
	cfg.Sources.URLs = map[string]string{
		string(model.SourcePerformance): srv.URL + "/performance",
		string(model.SourceAwards):      srv.URL + "/awards",
	}
	cfg.Fetch.RatePerSec = 100

	res, err := NewRemote(cfg).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Inputs.Performance, 2)
	require.Len(t, res.Inputs.Awards, 2)
	assert.Equal(t, "12 March 2026", res.UpdateDates[model.SourcePerformance])
	assert.Equal(t, "", res.UpdateDates[model.SourceAwards])
	assert.Len(t, res.Raws, 2)
}

func TestRemoteLoadDegradesOnUnavailableSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := config.Config{}
	cfg.Sources.URLs = map[string]string{
		string(model.SourcePerformance): srv.URL + "/performance",
	}
	cfg.Fetch.RatePerSec = 100
	cfg.Fetch.MaxRetries = 1

	res, err := NewRemote(cfg).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Inputs.Performance)
	assert.Empty(t, res.Raws)
}
