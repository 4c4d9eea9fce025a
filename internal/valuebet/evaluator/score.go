package evaluator

import (
	"regexp"
	"strings"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/fuzzy"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/normalize"
)

var eventSplit = regexp.MustCompile(`(?i)\s+v\s+|\s+vs\s+|\s+@\s+`)

// ScoreSide pontua o quanto um lado do evento casa com o time procurado.
// Igualdade exata vale 300; prefixo vale 250 menos 10 por caractere de
// diferença; senão vale o ratio fuzzy puro.
func ScoreSide(side, team string) int {
	s := normalize.Text(side)
	t := normalize.Text(team)
	if s == t {
		return 300
	}
	if strings.HasPrefix(s, t) || strings.HasPrefix(t, s) {
		diff := len(s) - len(t)
		if diff < 0 {
			diff = -diff
		}
		score := 250 - 10*diff
		if score < 1 {
			score = 1
		}
		return score
	}
	return fuzzy.Ratio(s, t)
}

// ScoreEvent pontua o nome completo do evento ("Casa v Fora") pro time,
// devolvendo o melhor score entre os lados.
func ScoreEvent(eventName, team string) int {
	best := 0
	for _, side := range eventSplit.Split(eventName, -1) {
		if score := ScoreSide(side, team); score > best {
			best = score
		}
	}
	return best
}
