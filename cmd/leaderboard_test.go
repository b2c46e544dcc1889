//go:build !integration

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardCmd_RunE_RejectsUnknownCohort(t *testing.T) {
	cfg = scorableConfig()

	require.NoError(t, leaderboardCmd.Flags().Set("cohort", "7"))
	defer func() { _ = leaderboardCmd.Flags().Set("cohort", "0") }()

	leaderboardCmd.SetContext(context.Background())
	defer leaderboardCmd.SetContext(nil)

	err := leaderboardCmd.RunE(leaderboardCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--cohort must be 1-4")
}

func TestLeaderboardCmd_RunE_RejectsUnknownTier(t *testing.T) {
	cfg = scorableConfig()

	require.NoError(t, leaderboardCmd.Flags().Set("cohort", "2"))
	require.NoError(t, leaderboardCmd.Flags().Set("tier", "bronze"))
	defer func() {
		_ = leaderboardCmd.Flags().Set("cohort", "0")
		_ = leaderboardCmd.Flags().Set("tier", "")
	}()

	leaderboardCmd.SetContext(context.Background())
	defer leaderboardCmd.SetContext(nil)

	err := leaderboardCmd.RunE(leaderboardCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

func TestLeaderboardCmd_RunE_RejectsUnknownMode(t *testing.T) {
	cfg = scorableConfig()

	require.NoError(t, leaderboardCmd.Flags().Set("cohort", "2"))
	require.NoError(t, leaderboardCmd.Flags().Set("mode", "olympic"))
	defer func() {
		_ = leaderboardCmd.Flags().Set("cohort", "0")
		_ = leaderboardCmd.Flags().Set("mode", "sequential")
	}()

	leaderboardCmd.SetContext(context.Background())
	defer leaderboardCmd.SetContext(nil)

	err := leaderboardCmd.RunE(leaderboardCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--mode must be sequential or dense")
}
