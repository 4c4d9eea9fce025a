package betparse

import (
	"regexp"
	"strings"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/alias"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/fuzzy"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/normalize"
)

// Result é a decomposição de uma linha de aposta em times, mercados e
// placares. O que sobrar sem classificação vai em Unrecognized.
type Result struct {
	Teams        []string
	Markets      []string
	Scores       [][2]int
	Unrecognized []string
}

// Parser decompõe linhas de aposta usando o cadastro de aliases.
// Threshold é o score mínimo (0-100) pro fuzzy matching de mercados.
type Parser struct {
	Store     *alias.Store
	Threshold int
	Fillers   map[string]struct{}
}

var defaultFillers = []string{"and", "or", "the", "a", "an", "of", "in", "at", "v", "vs"}

var sportKeywords = map[string]struct{}{
	"football":   {},
	"soccer":     {},
	"basketball": {},
	"hockey":     {},
	"nba":        {},
	"nfl":        {},
	"nhl":        {},
}

var scorePattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

func NewParser(store *alias.Store, threshold int) *Parser {
	fillers := make(map[string]struct{}, len(defaultFillers))
	for _, f := range defaultFillers {
		fillers[f] = struct{}{}
	}
	return &Parser{Store: store, Threshold: threshold, Fillers: fillers}
}

// Parse normaliza a linha e extrai, nessa ordem: times (casamento guloso de
// alias pelo maior número de tokens), mercados (fuzzy contra os aliases
// cadastrados), e placares (tokens "N-N"). Placar sem mercado explícito
// implica "correct score"; "win" solto com time implica "match odds".
func (p *Parser) Parse(input string) Result {
	tokens := strings.Fields(normalize.Input(input))

	aliasMap := p.Store.TeamAliasMap()
	teams, leftover := matchTeams(tokens, aliasMap)

	leftover = dropTokens(leftover, sportKeywords)

	var markets []string
	markets, leftover = p.matchMarkets(leftover)

	// "win" sozinho com time conhecido é aposta no mercado principal
	if len(markets) == 0 && len(teams) > 0 && contains(leftover, "win") {
		markets = append(markets, "match odds")
		leftover = dropTokens(leftover, map[string]struct{}{"win": {}, "to": {}})
	}

	var scores [][2]int
	scores, leftover = extractScores(leftover)
	if len(scores) > 0 && !containsStr(markets, "correct score") {
		markets = append(markets, "correct score")
	}

	leftover = dropTokens(leftover, p.Fillers)

	res := Result{Teams: teams, Markets: markets, Scores: scores}
	if len(leftover) > 0 {
		res.Unrecognized = leftover
	}
	return res
}

// matchTeams percorre os tokens tentando casar o maior span possível com um
// alias de time. Tokens casados saem do leftover; times repetidos contam uma vez.
func matchTeams(tokens []string, aliasMap map[string]string) ([]string, []string) {
	maxSpan := 1
	for a := range aliasMap {
		if n := len(strings.Fields(a)); n > maxSpan {
			maxSpan = n
		}
	}

	used := make([]bool, len(tokens))
	var teams []string
	for i := 0; i < len(tokens); i++ {
		if used[i] {
			continue
		}
		span := maxSpan
		if rest := len(tokens) - i; rest < span {
			span = rest
		}
		for ; span >= 1; span-- {
			blocked := false
			parts := make([]string, 0, span)
			for j := i; j < i+span; j++ {
				if used[j] {
					blocked = true
					break
				}
				parts = append(parts, normalize.CleanToken(tokens[j]))
			}
			if blocked {
				continue
			}
			name, ok := aliasMap[strings.Join(parts, " ")]
			if !ok {
				continue
			}
			for j := i; j < i+span; j++ {
				used[j] = true
			}
			if !containsStr(teams, name) {
				teams = append(teams, name)
			}
			break
		}
	}

	var leftover []string
	for i, t := range tokens {
		if !used[i] {
			leftover = append(leftover, t)
		}
	}
	return teams, leftover
}

// matchMarkets roda o fuzzy dos aliases de mercado contra o leftover inteiro,
// removendo os tokens do alias casado a cada iteração, até não casar mais nada.
func (p *Parser) matchMarkets(leftover []string) ([]string, []string) {
	aliases := p.Store.MarketAliases()

	var markets []string
	for {
		leftover = dropTokens(leftover, p.Fillers)
		phrase := strings.Join(leftover, " ")
		if len(phrase) < 2 {
			break
		}

		best := -1
		var bestAlias alias.MarketAlias
		for _, a := range aliases {
			if score := fuzzy.Ratio(phrase, a.Norm); score > best {
				best = score
				bestAlias = a
			}
		}
		if best < p.Threshold {
			break
		}

		if !containsStr(markets, bestAlias.Market) {
			markets = append(markets, bestAlias.Market)
		}

		next := removeAliasTokens(leftover, strings.Fields(bestAlias.Norm))
		if len(next) == len(leftover) {
			break
		}
		leftover = next
	}
	return markets, leftover
}

// removeAliasTokens tira do leftover a sequência contígua do alias; se não
// houver sequência exata, remove token a token.
func removeAliasTokens(leftover, aliasTokens []string) []string {
	if len(aliasTokens) == 0 {
		return leftover
	}
	if i := findSequence(leftover, aliasTokens); i >= 0 {
		out := make([]string, 0, len(leftover)-len(aliasTokens))
		out = append(out, leftover[:i]...)
		return append(out, leftover[i+len(aliasTokens):]...)
	}

	wanted := make(map[string]int, len(aliasTokens))
	for _, t := range aliasTokens {
		wanted[t]++
	}
	var out []string
	for _, t := range leftover {
		if wanted[t] > 0 {
			wanted[t]--
			continue
		}
		out = append(out, t)
	}
	return out
}

func findSequence(haystack, needle []string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		ok := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func extractScores(tokens []string) ([][2]int, []string) {
	var scores [][2]int
	var rest []string
	for _, t := range tokens {
		m := scorePattern.FindStringSubmatch(t)
		if m == nil {
			rest = append(rest, t)
			continue
		}
		scores = append(scores, [2]int{atoi(m[1]), atoi(m[2])})
	}
	return scores, rest
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func dropTokens(tokens []string, drop map[string]struct{}) []string {
	var out []string
	for _, t := range tokens {
		if _, ok := drop[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func containsStr(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
