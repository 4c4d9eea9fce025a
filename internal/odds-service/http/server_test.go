package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseBetLine(t *testing.T) {
	bookmaker, sport, bet, odds, ok := ParseBetLine("bet365 - Football - Arsenal to win - 2.1")
	require.True(t, ok)
	require.Equal(t, "bet365", bookmaker)
	require.Equal(t, "Football", sport)
	require.Equal(t, "Arsenal to win", bet)
	require.Equal(t, 2.1, odds)
}

func TestParseBetLineRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"bet365 - Football - Arsenal to win",            // faltou odds
		"bet365 - Football - Arsenal - to win - 2.1",    // separador a mais
		"bet365 - Football - Arsenal to win - zero",     // odds não numérica
		"bet365 - Football - Arsenal to win - -3",       // odds negativa
		"bet365 - Football - Arsenal to win - 0",        // odds zero
		" - Football - Arsenal to win - 2.1",            // bookmaker vazio
		"bet365 - Football -  - 2.1",                    // aposta vazia
	}
	for _, line := range cases {
		_, _, _, _, ok := ParseBetLine(line)
		require.False(t, ok, line)
	}
}

// fakeRegistry registra as chamadas de cadastro feitas pelos handlers admin.
type fakeRegistry struct {
	teams   []string
	aliases map[string]string
	markets []string
	players []string
}

func (f *fakeRegistry) AddTeam(_ context.Context, name, _ string, _ []string) error {
	f.teams = append(f.teams, name)
	return nil
}

func (f *fakeRegistry) AddTeamAlias(_ context.Context, team, alias string) error {
	if f.aliases == nil {
		f.aliases = make(map[string]string)
	}
	f.aliases[team] = alias
	return nil
}

func (f *fakeRegistry) AddMarket(_ context.Context, name, _ string, _ []string) error {
	f.markets = append(f.markets, name)
	return nil
}

func (f *fakeRegistry) AddPlayer(_ context.Context, name, _, _ string, _ []string) error {
	f.players = append(f.players, name)
	return nil
}

func adminServer(t *testing.T) (*fakeRegistry, *httptest.Server) {
	reg := &fakeRegistry{}
	api := &API{Log: zap.NewNop(), Registry: reg}
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return reg, srv
}

func TestAdminRegistryEndpoints(t *testing.T) {
	reg, srv := adminServer(t)

	resp, err := http.Post(srv.URL+"/v1/admin/teams", "application/json",
		strings.NewReader(`{"name":"Porto","sport":"football","aliases":["FC Porto"]}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"Porto"}, reg.teams)

	resp, err = http.Post(srv.URL+"/v1/admin/teams/Porto/aliases", "application/json",
		strings.NewReader(`{"alias":"Dragoes"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Dragoes", reg.aliases["Porto"])

	resp, err = http.Post(srv.URL+"/v1/admin/markets", "application/json",
		strings.NewReader(`{"name":"correct score","sport":"football","aliases":["exact score"]}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"correct score"}, reg.markets)

	resp, err = http.Post(srv.URL+"/v1/admin/players", "application/json",
		strings.NewReader(`{"name":"Saka","sport":"football","team":"Arsenal"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"Saka"}, reg.players)
}

func TestAdminRegistryRejectsMissingName(t *testing.T) {
	reg, srv := adminServer(t)

	cases := []struct{ path, body string }{
		{"/v1/admin/teams", `{"sport":"football"}`},
		{"/v1/admin/teams/Porto/aliases", `{}`},
		{"/v1/admin/markets", `{"aliases":["1x2"]}`},
		{"/v1/admin/players", `{"team":"Arsenal"}`},
	}
	for _, c := range cases {
		resp, err := http.Post(srv.URL+c.path, "application/json", strings.NewReader(c.body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, c.path)
	}
	require.Empty(t, reg.teams)
	require.Empty(t, reg.aliases)
	require.Empty(t, reg.markets)
	require.Empty(t, reg.players)
}
