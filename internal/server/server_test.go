package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

type staticProvider struct {
	cards []model.ScoreCard
	err   error
}

func (p staticProvider) Cards(context.Context) ([]model.ScoreCard, error) {
	return p.cards, p.err
}

func testCards() []model.ScoreCard {
	return []model.ScoreCard{
		{
			ClubNumber: 1234, ClubName: "Thames Speakers", ActiveMembers: 22,
			Cohort:    model.CohortRising,
			Education: model.EducationPoints{L1: 50, L2: 40},
		},
		{
			ClubNumber: 5678, ClubName: "River Orators", ActiveMembers: 18,
			Cohort:    model.CohortRising,
			Education: model.EducationPoints{L1: 30},
		},
		{
			// Below the minimum membership bar.
			ClubNumber: 7777, ClubName: "Tiny Club", ActiveMembers: 4,
			Cohort:    model.CohortUnknown,
			Education: model.EducationPoints{L1: 10},
		},
		{
			// Unknown cohort but enough members: breakdown only.
			ClubNumber: 8888, ClubName: "Giant Club", ActiveMembers: 60,
			Cohort:    model.CohortUnknown,
			Education: model.EducationPoints{L1: 20},
		},
	}
}

func newTestServer(t *testing.T, provider CardProvider) *httptest.Server {
	t.Helper()
	rules := config.DefaultRules()
	srv := httptest.NewServer(New(provider, rules, config.ServerConfig{}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, staticProvider{})

	var body map[string]string
	resp := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLeaderboard(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Cohort  string        `json:"cohort"`
		Entries []model.Entry `json:"entries"`
	}
	resp := getJSON(t, srv.URL+"/api/leaderboard?cohort=2", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Rising Stars", body.Cohort)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, "Thames Speakers", body.Entries[0].ClubName)
	assert.Equal(t, 1, body.Entries[0].Rank)
	assert.True(t, body.Entries[0].TopThree)
}

func TestLeaderboard_TierMetric(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Metric  string        `json:"metric"`
		Entries []model.Entry `json:"entries"`
	}
	resp := getJSON(t, srv.URL+"/api/leaderboard?cohort=2&tier="+string(model.TierEducation), &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(model.TierEducation), body.Metric)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, 90, body.Entries[0].Score)
}

func TestLeaderboard_BadParams(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	for _, url := range []string{
		"/api/leaderboard",
		"/api/leaderboard?cohort=9",
		"/api/leaderboard?cohort=abc",
		"/api/leaderboard?cohort=2&tier=bogus",
		"/api/leaderboard?cohort=2&mode=bogus",
	} {
		var body errorResponse
		resp := getJSON(t, srv.URL+url, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
		assert.NotEmpty(t, body.Error, url)
	}
}

func TestLeaderboard_EmptyCohortIsEmptyArray(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Entries []model.Entry `json:"entries"`
	}
	resp := getJSON(t, srv.URL+"/api/leaderboard?cohort=4", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body.Entries)
	assert.Empty(t, body.Entries)
}

func TestBreakdown_KeepsUnknownCohort(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Clubs []model.ScoreCard `json:"clubs"`
	}
	resp := getJSON(t, srv.URL+"/api/breakdown", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var numbers []int
	for _, c := range body.Clubs {
		numbers = append(numbers, c.ClubNumber)
	}
	assert.Contains(t, numbers, 8888, "unknown cohort stays in breakdowns")
	assert.NotContains(t, numbers, 7777, "minimum membership still applies")
}

func TestBreakdown_TierFilter(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Tier  string `json:"tier"`
		Clubs []struct {
			ClubNumber int `json:"club_number"`
			Total      int `json:"total"`
		} `json:"clubs"`
	}
	resp := getJSON(t, srv.URL+"/api/breakdown?tier="+string(model.TierEducation), &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pathways Pioneers", body.Tier)
	require.NotEmpty(t, body.Clubs)
}

func TestWinners(t *testing.T) {
	srv := newTestServer(t, staticProvider{cards: testCards()})

	var body struct {
		Winners []struct {
			Cohort   string `json:"cohort"`
			Category string `json:"category"`
			ClubName string `json:"club_name"`
			Rank     int    `json:"rank"`
		} `json:"winners"`
	}
	resp := getJSON(t, srv.URL+"/api/winners", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body.Winners)

	assert.Equal(t, "Rising Stars", body.Winners[0].Cohort)
	assert.Equal(t, "Overall", body.Winners[0].Category)
	assert.Equal(t, "Thames Speakers", body.Winners[0].ClubName)
}

func TestProviderFailure(t *testing.T) {
	srv := newTestServer(t, staticProvider{err: eris.New("sources offline")})

	var body errorResponse
	resp := getJSON(t, srv.URL+"/api/winners", &body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "scoring data unavailable", body.Error)
}
