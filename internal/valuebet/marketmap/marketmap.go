package marketmap

import (
	"regexp"
	"strings"
)

// defaultTypes mapeia nomes canônicos de mercado pros códigos de tipo usados
// nos nomes de mercado raspados da exchange.
var defaultTypes = map[string][]string{
	"match odds":            {"MATCH_ODDS"},
	"both teams to score":   {"BOTH_TEAMS_TO_SCORE"},
	"correct score":         {"CORRECT_SCORE"},
	"half time/full time":   {"HALF_TIME_FULL_TIME"},
	"over/under 0.5 goals":  {"OVER_UNDER_05"},
	"over/under 1.5 goals":  {"OVER_UNDER_15"},
	"over/under 2.5 goals":  {"OVER_UNDER_25"},
	"over/under 3.5 goals":  {"OVER_UNDER_35"},
	"over/under 4.5 goals":  {"OVER_UNDER_45"},
	"win and both to score": {"MATCH_ODDS_AND_BTTS"},
	"win to nil":            {"TEAM_A_WIN_TO_NIL", "TEAM_B_WIN_TO_NIL"},
	"first half goals 0.5":  {"FIRST_HALF_GOALS_05"},
	"first half goals 1.5":  {"FIRST_HALF_GOALS_15"},
	"corners over/under":    {"CORNER_ODDS"},
	"moneyline_nba":         {"MONEY_LINE"},
	"moneyline_nfl":         {"MONEY_LINE"},
	"moneyline_nhl":         {"MONEY_LINE"},
}

// Types devolve os códigos de tipo de um mercado. Overrides (se houver) têm
// precedência sobre o mapeamento default. Mercado desconhecido cai no tipo
// principal do esporte: MATCH_ODDS pra futebol, MONEY_LINE pro resto.
func Types(market, sport string, overrides map[string][]string) []string {
	key := strings.ToLower(strings.TrimSpace(market))
	if overrides != nil {
		if t, ok := overrides[key]; ok {
			return t
		}
	}
	if t, ok := defaultTypes[key]; ok {
		return t
	}
	if sport == "" || sport == "football" {
		return []string{"MATCH_ODDS"}
	}
	return []string{"MONEY_LINE"}
}

var typeCodePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// BookTypes interpreta o nome de um mercado raspado. Exchanges expõem códigos
// de tipo ("MATCH_ODDS", "CORRECT_SCORE"); esses são usados direto. Nomes de
// exibição passam pelo mapeamento padrão.
func BookTypes(name, sport string, overrides map[string][]string) []string {
	trimmed := strings.TrimSpace(name)
	if typeCodePattern.MatchString(trimmed) {
		return []string{trimmed}
	}
	return Types(strings.ToLower(trimmed), sport, overrides)
}

// InferSport deduz o esporte pelo nome do mercado. Default é futebol.
func InferSport(market string) string {
	m := strings.ToLower(market)
	switch {
	case strings.Contains(m, "nba"):
		return "nba"
	case strings.Contains(m, "nfl"):
		return "nfl"
	case strings.Contains(m, "nhl"):
		return "nhl"
	default:
		return "football"
	}
}

// DefaultMarket é o mercado assumido quando a aposta cita só o time.
func DefaultMarket(sport string) string {
	switch sport {
	case "nba":
		return "moneyline_nba"
	case "nfl":
		return "moneyline_nfl"
	case "nhl":
		return "moneyline_nhl"
	default:
		return "match odds"
	}
}

// DisplaySport formata o esporte pra linha salva: siglas em maiúsculas,
// o resto capitalizado.
func DisplaySport(sport string) string {
	switch sport {
	case "nba", "nfl", "nhl":
		return strings.ToUpper(sport)
	}
	if sport == "" {
		return ""
	}
	return strings.ToUpper(sport[:1]) + strings.ToLower(sport[1:])
}
