package alias

import (
	"sort"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/normalize"
)

// Team é um time cadastrado com seus aliases conhecidos.
type Team struct {
	Name    string
	Sport   string
	Aliases []string
}

// Market é um mercado cadastrado (nome canônico + aliases) e o esporte dele.
type Market struct {
	Name    string
	Sport   string
	Aliases []string
}

// Player é um jogador cadastrado, vinculado a um time.
type Player struct {
	Name    string
	Sport   string
	Team    string
	Aliases []string
}

// MarketAlias é um alias de mercado já normalizado, pronto pro fuzzy matching.
type MarketAlias struct {
	Market string
	Alias  string
	Norm   string
}

// Store mantém em memória o cadastro de times, mercados e jogadores.
// É carregado do Postgres na subida do worker e tratado como somente leitura.
type Store struct {
	Teams   map[string]Team
	Markets map[string]Market
	Players map[string]Player
}

func NewStore() *Store {
	return &Store{
		Teams:   make(map[string]Team),
		Markets: make(map[string]Market),
		Players: make(map[string]Player),
	}
}

// TeamAliasMap devolve alias normalizado -> nome canônico.
// O próprio nome canônico entra como alias de si mesmo.
func (s *Store) TeamAliasMap() map[string]string {
	out := make(map[string]string, len(s.Teams)*2)
	for name, t := range s.Teams {
		out[normalize.Text(name)] = name
		for _, a := range t.Aliases {
			out[normalize.Text(a)] = name
		}
	}
	return out
}

// MarketAliases devolve todos os aliases de mercado normalizados, em ordem
// estável (nome do mercado, depois alias) pra dar resultado determinístico.
func (s *Store) MarketAliases() []MarketAlias {
	names := make([]string, 0, len(s.Markets))
	for name := range s.Markets {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []MarketAlias
	for _, name := range names {
		m := s.Markets[name]
		out = append(out, MarketAlias{Market: name, Alias: name, Norm: normalize.Text(name)})
		for _, a := range m.Aliases {
			out = append(out, MarketAlias{Market: name, Alias: a, Norm: normalize.Text(a)})
		}
	}
	return out
}

// FindTeamByAlias resolve um alias (já normalizado ou não) pro nome canônico.
func (s *Store) FindTeamByAlias(alias string) (string, bool) {
	name, ok := s.TeamAliasMap()[normalize.Text(alias)]
	return name, ok
}

// TeamSport devolve o esporte do time. Default é futebol.
func (s *Store) TeamSport(team string) string {
	if t, ok := s.Teams[team]; ok && t.Sport != "" {
		return t.Sport
	}
	return "football"
}

// MarketSport devolve o esporte de um mercado cadastrado. Default é futebol.
func (s *Store) MarketSport(market string) string {
	if m, ok := s.Markets[market]; ok && m.Sport != "" {
		return m.Sport
	}
	return "football"
}
