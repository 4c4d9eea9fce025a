package betparse

import (
	"regexp"
	"strings"
)

// Side indica qual lado do confronto extrair numa entrada com vários jogos.
type Side int

const (
	Home Side = iota
	Away
)

var (
	timePattern  = regexp.MustCompile(`\(\d{1,2}:\d{2}\)`)
	versusSplit  = regexp.MustCompile(`(?i)\s+vs?\.?\s+|\s+@\s+`)
	matchDivider = regexp.MustCompile(`\s*[&,]\s*`)
)

// SplitMatches extrai o time de cada confronto numa entrada com vários jogos
// ("Ajax v Lazio & Porto v Braga (20:00)"), do lado pedido. Horários entre
// parênteses são descartados.
func SplitMatches(input string, side Side) []string {
	s := timePattern.ReplaceAllString(input, "")

	var teams []string
	for _, part := range matchDivider.Split(s, -1) {
		halves := versusSplit.Split(part, 2)
		if len(halves) < 2 {
			continue
		}
		pick := halves[0]
		if side == Away {
			pick = halves[1]
		}
		if t := strings.TrimSpace(pick); t != "" {
			teams = append(teams, t)
		}
	}
	return teams
}

// ReduceMultiMatch reduz uma aposta com vários confrontos pra uma linha com
// os times da casa mais o restante (mercado, placar etc). O avaliador trata
// cada time da casa como uma aposta independente no mesmo mercado.
func ReduceMultiMatch(input string) string {
	homes := SplitMatches(input, Home)
	aways := SplitMatches(input, Away)

	rest := timePattern.ReplaceAllString(input, "")
	for _, t := range append(append([]string{}, homes...), aways...) {
		rest = removeInsensitive(rest, t)
	}
	rest = regexp.MustCompile(`(?i)\bvs?\.?\b`).ReplaceAllString(rest, "")
	rest = strings.Trim(strings.Join(strings.Fields(rest), " "), " ,&")

	out := strings.Join(homes, " ")
	if rest != "" {
		out += " " + rest
	}
	return out
}

func removeInsensitive(s, sub string) string {
	if sub == "" {
		return s
	}
	lower := strings.ToLower(s)
	needle := strings.ToLower(sub)
	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			return s
		}
		s = s[:i] + s[i+len(sub):]
		lower = lower[:i] + lower[i+len(needle):]
	}
}
