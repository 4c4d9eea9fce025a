package evaluator

import (
	"strings"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/fuzzy"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/normalize"
)

// Runner é uma seleção disponível num mercado com o melhor lay corrente.
type Runner struct {
	Selection string
	LayOdds   float64
}

// PickRunner escolhe a seleção certa pro time conforme o tipo do mercado.
// Cada tipo tem a sua convenção de nome de seleção na exchange; quando nada
// casa pela regra do tipo, cai no fuzzy contra o nome do time.
func PickRunner(runners []Runner, team string, marketTypes []string) (Runner, bool) {
	t := normalize.Text(team)

	for _, mt := range marketTypes {
		switch {
		case mt == "MATCH_ODDS" || mt == "MONEY_LINE":
			if r, ok := findRunner(runners, func(sel string) bool { return sel == t }); ok {
				return r, true
			}
			if r, ok := bestFuzzyRunner(runners, t, 80); ok {
				return r, true
			}

		case mt == "HALF_TIME_FULL_TIME":
			// convenção da exchange: "Casa/Casa", "Empate/Casa", "Casa/Empate"
			for _, cand := range []string{t + "/" + t, "draw/" + t, t + "/draw"} {
				if r, ok := findRunner(runners, func(sel string) bool { return sel == cand }); ok {
					return r, true
				}
			}

		case mt == "MATCH_ODDS_AND_BTTS":
			if r, ok := findRunner(runners, func(sel string) bool {
				return strings.Contains(sel, t) && strings.Contains(sel, "yes")
			}); ok {
				return r, true
			}

		case strings.HasPrefix(mt, "MATCH_ODDS_AND_OU"):
			if r, ok := findRunner(runners, func(sel string) bool {
				return strings.Contains(sel, t) && strings.Contains(sel, "over")
			}); ok {
				return r, true
			}

		case strings.HasPrefix(mt, "OVER_UNDER"),
			strings.HasPrefix(mt, "FIRST_HALF_GOALS"),
			mt == "CORNER_ODDS":
			if r, ok := findRunner(runners, func(sel string) bool { return strings.Contains(sel, "over") }); ok {
				return r, true
			}

		case strings.HasSuffix(mt, "WIN_TO_NIL"), mt == "BOTH_TEAMS_TO_SCORE":
			if r, ok := findRunner(runners, func(sel string) bool { return sel == "yes" }); ok {
				return r, true
			}
		}
	}

	// fallback genérico: "yes", depois qualquer "over"
	if r, ok := findRunner(runners, func(sel string) bool { return sel == "yes" }); ok {
		return r, true
	}
	if r, ok := findRunner(runners, func(sel string) bool { return strings.Contains(sel, "over") }); ok {
		return r, true
	}
	return bestFuzzyRunner(runners, t, 70)
}

func findRunner(runners []Runner, match func(string) bool) (Runner, bool) {
	for _, r := range runners {
		if match(normalize.Text(r.Selection)) {
			return r, true
		}
	}
	return Runner{}, false
}

func bestFuzzyRunner(runners []Runner, target string, cutoff int) (Runner, bool) {
	best := -1
	var pick Runner
	for _, r := range runners {
		if score := fuzzy.Ratio(normalize.Text(r.Selection), target); score > best {
			best = score
			pick = r
		}
	}
	if best < cutoff {
		return Runner{}, false
	}
	return pick, true
}
