package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickRunnerMatchOdds(t *testing.T) {
	runners := []Runner{
		{Selection: "Arsenal", LayOdds: 2.1},
		{Selection: "Chelsea", LayOdds: 3.6},
		{Selection: "The Draw", LayOdds: 3.4},
	}

	r, ok := PickRunner(runners, "Arsenal", []string{"MATCH_ODDS"})
	require.True(t, ok)
	require.Equal(t, "Arsenal", r.Selection)

	// nome levemente diferente cai no fuzzy
	r, ok = PickRunner(runners, "Arsenal FC", []string{"MATCH_ODDS"})
	require.True(t, ok)
	require.Equal(t, "Arsenal", r.Selection)
}

func TestPickRunnerHalfTimeFullTime(t *testing.T) {
	runners := []Runner{
		{Selection: "Arsenal/Arsenal", LayOdds: 3.2},
		{Selection: "Draw/Arsenal", LayOdds: 6.0},
		{Selection: "Chelsea/Chelsea", LayOdds: 5.5},
	}

	r, ok := PickRunner(runners, "Arsenal", []string{"HALF_TIME_FULL_TIME"})
	require.True(t, ok)
	require.Equal(t, "Arsenal/Arsenal", r.Selection)
}

func TestPickRunnerWinAndBTTS(t *testing.T) {
	runners := []Runner{
		{Selection: "Arsenal/Yes", LayOdds: 4.0},
		{Selection: "Arsenal/No", LayOdds: 3.1},
		{Selection: "Chelsea/Yes", LayOdds: 7.5},
	}

	r, ok := PickRunner(runners, "Arsenal", []string{"MATCH_ODDS_AND_BTTS"})
	require.True(t, ok)
	require.Equal(t, "Arsenal/Yes", r.Selection)
}

func TestPickRunnerOverUnder(t *testing.T) {
	runners := []Runner{
		{Selection: "Under 2.5 Goals", LayOdds: 2.08},
		{Selection: "Over 2.5 Goals", LayOdds: 1.92},
	}

	r, ok := PickRunner(runners, "Arsenal", []string{"OVER_UNDER_25"})
	require.True(t, ok)
	require.Equal(t, "Over 2.5 Goals", r.Selection)
}

func TestPickRunnerWinToNil(t *testing.T) {
	runners := []Runner{
		{Selection: "Yes", LayOdds: 3.9},
		{Selection: "No", LayOdds: 1.4},
	}

	r, ok := PickRunner(runners, "Arsenal", []string{"TEAM_A_WIN_TO_NIL"})
	require.True(t, ok)
	require.Equal(t, "Yes", r.Selection)
}

func TestPickRunnerNoMatch(t *testing.T) {
	runners := []Runner{
		{Selection: "Under 2.5 Goals", LayOdds: 2.08},
	}

	_, ok := PickRunner(runners, "Arsenal", []string{"MATCH_ODDS"})
	require.False(t, ok)
}
