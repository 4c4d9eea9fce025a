package marketmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	require.Equal(t, []string{"MATCH_ODDS"}, Types("match odds", "football", nil))
	require.Equal(t, []string{"CORRECT_SCORE"}, Types("Correct Score", "football", nil))
	require.Equal(t, []string{"TEAM_A_WIN_TO_NIL", "TEAM_B_WIN_TO_NIL"}, Types("win to nil", "football", nil))
	require.Equal(t, []string{"MONEY_LINE"}, Types("moneyline_nba", "nba", nil))

	// desconhecido cai no tipo principal do esporte
	require.Equal(t, []string{"MATCH_ODDS"}, Types("mercado misterioso", "football", nil))
	require.Equal(t, []string{"MONEY_LINE"}, Types("mercado misterioso", "nhl", nil))

	// overrides têm precedência
	ov := map[string][]string{"match odds": {"CUSTOM"}}
	require.Equal(t, []string{"CUSTOM"}, Types("match odds", "football", ov))
}

func TestBookTypes(t *testing.T) {
	// códigos de tipo raspados são usados direto
	require.Equal(t, []string{"CORRECT_SCORE"}, BookTypes("CORRECT_SCORE", "football", nil))
	require.Equal(t, []string{"OVER_UNDER_25"}, BookTypes("OVER_UNDER_25", "football", nil))

	// nomes de exibição passam pelo mapeamento
	require.Equal(t, []string{"MATCH_ODDS"}, BookTypes("Match Odds", "football", nil))
}

func TestInferSport(t *testing.T) {
	require.Equal(t, "nba", InferSport("moneyline_nba"))
	require.Equal(t, "nfl", InferSport("NFL moneyline"))
	require.Equal(t, "football", InferSport("match odds"))
}

func TestDefaultMarket(t *testing.T) {
	require.Equal(t, "match odds", DefaultMarket("football"))
	require.Equal(t, "moneyline_nba", DefaultMarket("nba"))
	require.Equal(t, "moneyline_nhl", DefaultMarket("nhl"))
}

func TestDisplaySport(t *testing.T) {
	require.Equal(t, "NBA", DisplaySport("nba"))
	require.Equal(t, "Football", DisplaySport("football"))
	require.Equal(t, "", DisplaySport(""))
}
