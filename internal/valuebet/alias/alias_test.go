package alias

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	s := NewStore()
	s.Teams["Arsenal"] = Team{Name: "Arsenal", Sport: "football", Aliases: []string{"The Gunners", "Arsenal FC"}}
	s.Teams["Los Angeles Lakers"] = Team{Name: "Los Angeles Lakers", Sport: "nba", Aliases: []string{"LA Lakers"}}
	s.Markets["match odds"] = Market{Name: "match odds", Sport: "football", Aliases: []string{"1x2"}}
	s.Markets["correct score"] = Market{Name: "correct score", Sport: "football"}
	return s
}

func TestTeamAliasMap(t *testing.T) {
	m := testStore().TeamAliasMap()

	// nome canônico e aliases apontam pro mesmo time, já normalizados
	require.Equal(t, "Arsenal", m["arsenal"])
	require.Equal(t, "Arsenal", m["the gunners"])
	require.Equal(t, "Arsenal", m["arsenal fc"])
	require.Equal(t, "Los Angeles Lakers", m["la lakers"])
}

func TestFindTeamByAlias(t *testing.T) {
	s := testStore()

	name, ok := s.FindTeamByAlias("  THE GUNNERS ")
	require.True(t, ok)
	require.Equal(t, "Arsenal", name)

	_, ok = s.FindTeamByAlias("internazionale")
	require.False(t, ok)
}

func TestMarketAliasesStableOrder(t *testing.T) {
	s := testStore()

	a := s.MarketAliases()
	b := s.MarketAliases()
	require.Equal(t, a, b)

	// canônico vem antes dos aliases do mesmo mercado
	require.Equal(t, "correct score", a[0].Market)
	require.Equal(t, "correct score", a[0].Norm)
	require.Equal(t, "match odds", a[1].Market)
	require.Equal(t, "1x2", a[2].Alias)
}

func TestTeamSportDefaults(t *testing.T) {
	s := testStore()
	require.Equal(t, "nba", s.TeamSport("Los Angeles Lakers"))
	require.Equal(t, "football", s.TeamSport("Arsenal"))
	require.Equal(t, "football", s.TeamSport("time desconhecido"))
}
