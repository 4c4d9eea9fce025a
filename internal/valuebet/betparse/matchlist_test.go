package betparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMatches(t *testing.T) {
	in := "Ajax v Lazio & Porto v Braga (20:00)"

	require.Equal(t, []string{"Ajax", "Porto"}, SplitMatches(in, Home))
	require.Equal(t, []string{"Lazio", "Braga"}, SplitMatches(in, Away))
}

func TestSplitMatchesVariants(t *testing.T) {
	require.Equal(t, []string{"Milan"}, SplitMatches("Milan vs Inter", Home))
	require.Equal(t, []string{"Celtics"}, SplitMatches("Lakers @ Celtics", Away))

	// entrada sem confronto não produz nada
	require.Empty(t, SplitMatches("Arsenal to win", Home))
}

func TestReduceMultiMatch(t *testing.T) {
	got := ReduceMultiMatch("Ajax v Lazio & Porto v Braga (20:00)")
	require.Equal(t, "Ajax Porto", got)
}

func TestReduceMultiMatchKeepsLeftoverText(t *testing.T) {
	got := ReduceMultiMatch("Ajax v Lazio, Porto v Braga")
	require.Equal(t, "Ajax Porto", got)
}
