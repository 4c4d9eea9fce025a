package evaluator

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/alias"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/betparse"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/fuzzy"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/marketmap"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/normalize"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// Status final de uma avaliação.
const (
	StatusValue    = "VALUE"
	Status2PC      = "2PC"
	StatusNotValue = "NOT_VALUE"
	StatusNoEvent  = "NO_EVENT"
	StatusNoPrice  = "NO_PRICE"
	StatusUnparsed = "UNPARSED"
)

// Margens de valor sobre as odds oferecidas pelo bookmaker.
const (
	valueMargin  = 0.9999
	twoPCMargin  = 1.0199
	fuzzyRequire = 1 // score mínimo pra aceitar um evento como resolvido

	// A partir daqui o time é considerado um dos lados do confronto
	// (igualdade ou prefixo curto). Abaixo disso o casamento com um evento
	// já consultado é coincidência fuzzy, não o outro lado do mesmo jogo.
	sameMatchScore = 200
)

// MarketBook é o estado corrente de um mercado raspado da exchange.
type MarketBook struct {
	MarketID   string
	MarketName string
	EventName  string
	Runners    []Runner
}

// OddsSource fornece os mercados correntes e o lay price mais fresco de uma
// seleção (cache primeiro, banco como fallback).
type OddsSource interface {
	CurrentBooks(ctx context.Context) ([]MarketBook, error)
	LayPrice(ctx context.Context, marketID, selection string) (float64, error)
}

// Evaluation é o resultado da análise de uma aposta submetida.
type Evaluation struct {
	Status       string
	LayProduct   float64
	LayPrices    []float64
	Line         string
	Teams        []string
	Markets      []string
	Unrecognized []string
}

// Evaluator cruza apostas submetidas com os lay odds correntes da exchange.
type Evaluator struct {
	Log    *zap.Logger
	Source OddsSource
	Store  *alias.Store
	Parser *betparse.Parser

	// Overrides de tipo de mercado por nome (opcional)
	Overrides map[string][]string
}

// Evaluate decompõe a aposta, resolve um evento por time, escolhe a seleção
// certa em cada mercado e compara o produto dos lay prices com as odds
// oferecidas. Linhas com mais de um confronto são reduzidas antes do parse.
func (e *Evaluator) Evaluate(ctx context.Context, bet events.BetSubmitted) (Evaluation, error) {
	betLine := bet.Bet
	if strings.Count(strings.ToLower(betLine), " v ") > 1 {
		betLine = betparse.ReduceMultiMatch(betLine)
	}

	parsed := e.Parser.Parse(betLine)
	ev := Evaluation{Teams: parsed.Teams, Markets: parsed.Markets, Unrecognized: parsed.Unrecognized}

	if len(parsed.Teams) == 0 {
		ev.Status = StatusUnparsed
		e.Log.Warn("bet not parsed",
			zap.String("bet", bet.Bet),
			zap.Strings("unrecognized", parsed.Unrecognized),
			zap.Strings("market_suggestions", e.marketSuggestions(parsed.Unrecognized)),
		)
		return ev, nil
	}

	books, err := e.Source.CurrentBooks(ctx)
	if err != nil {
		return ev, fmt.Errorf("load current books: %w", err)
	}
	byEvent := groupByEvent(books)

	queried := make(map[string]bool)
	var prices []float64

	// Toda perna precisa resolver evento e preço. Perna sem evento ou sem
	// lay price encerra a análise sem veredito: um produto parcial compararia
	// menos pernas do que as odds oferecidas cobrem.
	for _, team := range parsed.Teams {
		sport := e.Store.TeamSport(team)
		markets := e.compatibleMarkets(parsed.Markets, sport)

		eventName, score, ok := bestEvent(byEvent, team)
		if !ok {
			ev.Status = StatusNoEvent
			e.Log.Info("no event for team", zap.String("team", team))
			return ev, nil
		}
		// o outro lado de um confronto já consultado não é perna nova
		if queried[eventName] && score >= sameMatchScore {
			continue
		}
		queried[eventName] = true

		var price float64
		var found bool
		for _, market := range markets {
			mtypes := marketmap.Types(market, sport, e.Overrides)

			if hasType(mtypes, "CORRECT_SCORE") && len(parsed.Scores) > 0 {
				price, found = e.correctScorePrice(ctx, byEvent[eventName], eventName, team, sport, parsed.Scores)
			} else {
				price, found = e.marketPrice(ctx, byEvent[eventName], team, sport, mtypes)
			}
			if found {
				break
			}
		}
		if !found {
			ev.Status = StatusNoPrice
			e.Log.Info("no lay price for team",
				zap.String("team", team),
				zap.String("event", eventName),
			)
			return ev, nil
		}
		prices = append(prices, price)
	}

	product := 1.0
	for _, p := range prices {
		product *= p
	}
	ev.LayPrices = prices
	ev.LayProduct = product

	switch {
	case product < valueMargin*bet.Odds:
		ev.Status = StatusValue
	case product <= twoPCMargin*bet.Odds:
		ev.Status = Status2PC
	default:
		ev.Status = StatusNotValue
	}

	if ev.Status == StatusValue || ev.Status == Status2PC {
		ev.Line = buildLine(bet, e.Store.TeamSport(parsed.Teams[0]), product, ev.Status)
	}
	return ev, nil
}

// compatibleMarkets filtra os mercados do parse pelo esporte do time; sem
// mercado compatível, assume o mercado principal do esporte.
func (e *Evaluator) compatibleMarkets(markets []string, sport string) []string {
	var out []string
	for _, m := range markets {
		if e.Store.MarketSport(m) == sport || marketmap.InferSport(m) == sport {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = append(out, marketmap.DefaultMarket(sport))
	}
	return out
}

// marketPrice acha no evento um mercado do tipo certo, escolhe a seleção do
// time e busca o lay price mais fresco.
func (e *Evaluator) marketPrice(ctx context.Context, books []MarketBook, team, sport string, mtypes []string) (float64, bool) {
	for _, book := range books {
		bookTypes := marketmap.BookTypes(book.MarketName, sport, e.Overrides)
		if !intersects(bookTypes, mtypes) {
			continue
		}
		runner, ok := PickRunner(book.Runners, team, mtypes)
		if !ok {
			continue
		}
		return e.price(ctx, book.MarketID, runner), true
	}
	return 0, false
}

// correctScorePrice combina os lay prices de todos os placares apostados num
// preço único: 1 / soma(1/p), arredondado pra CIMA na casa de 0.1.
func (e *Evaluator) correctScorePrice(ctx context.Context, books []MarketBook, eventName, team, sport string, scores [][2]int) (float64, bool) {
	var book *MarketBook
	for i := range books {
		bookTypes := marketmap.BookTypes(books[i].MarketName, sport, e.Overrides)
		if hasType(bookTypes, "CORRECT_SCORE") {
			book = &books[i]
			break
		}
	}
	if book == nil {
		return 0, false
	}

	// lado do time define a ordem do placar na seleção
	sides := eventSplit.Split(eventName, -1)
	isHome := true
	if len(sides) >= 2 {
		isHome = ScoreSide(sides[0], team) >= ScoreSide(sides[1], team)
	}

	sum := 0.0
	matched := 0
	for _, sc := range scores {
		h, a := sc[0], sc[1]
		if !isHome {
			h, a = a, h
		}
		want := fmt.Sprintf("%d - %d", h, a)
		runner, ok := findRunner(book.Runners, func(sel string) bool { return sel == want })
		if !ok {
			e.Log.Info("score selection missing", zap.String("market", book.MarketName), zap.String("selection", want))
			continue
		}
		if p := e.price(ctx, book.MarketID, runner); p > 0 {
			sum += 1 / p
			matched++
		}
	}
	if matched == 0 || sum == 0 {
		return 0, false
	}
	combined := math.Ceil((1/sum)*10) / 10
	return combined, true
}

// price prefere o lay price fresco da fonte; cai no valor do book se falhar.
func (e *Evaluator) price(ctx context.Context, marketID string, r Runner) float64 {
	if p, err := e.Source.LayPrice(ctx, marketID, r.Selection); err == nil && p > 0 {
		return p
	}
	return r.LayOdds
}

// bestEvent escolhe o evento com maior score pro time; empate resolve pelo
// nome em ordem alfabética. Score abaixo do mínimo rejeita o evento.
func bestEvent(byEvent map[string][]MarketBook, team string) (string, int, bool) {
	names := make([]string, 0, len(byEvent))
	for name := range byEvent {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	bestScore := -1
	for _, name := range names {
		if score := ScoreEvent(name, team); score > bestScore {
			bestScore = score
			best = name
		}
	}
	if bestScore < fuzzyRequire {
		return "", 0, false
	}
	return best, bestScore, true
}

// marketSuggestions aproxima os trechos não reconhecidos dos aliases de
// mercado cadastrados, pra apontar ao operador o que falta no cadastro.
func (e *Evaluator) marketSuggestions(unrecognized []string) []string {
	if len(unrecognized) == 0 {
		return nil
	}
	aliases := e.Store.MarketAliases()
	norms := make([]string, len(aliases))
	byNorm := make(map[string]string, len(aliases))
	for i, a := range aliases {
		norms[i] = a.Norm
		if _, seen := byNorm[a.Norm]; !seen {
			byNorm[a.Norm] = a.Market
		}
	}

	phrase := normalize.Text(strings.Join(unrecognized, " "))
	var out []string
	seen := make(map[string]bool)
	for _, n := range fuzzy.Closest(phrase, norms, 3, 0.6) {
		market := byNorm[n]
		if !seen[market] {
			seen[market] = true
			out = append(out, market)
		}
	}
	return out
}

func groupByEvent(books []MarketBook) map[string][]MarketBook {
	out := make(map[string][]MarketBook)
	for _, b := range books {
		out[b.EventName] = append(out[b.EventName], b)
	}
	return out
}

// buildLine monta a linha salva: "bookmaker - Esporte - aposta - odds / produto[ 2pc]".
// O esporte informado na submissão tem precedência sobre o do cadastro.
func buildLine(bet events.BetSubmitted, sport string, product float64, status string) string {
	if bet.Sport != "" {
		sport = strings.ToLower(bet.Sport)
	}
	rounded := math.Round(product*1000) / 1000
	rounded = math.Round(rounded*100) / 100

	line := fmt.Sprintf("%s - %s - %s - %s / %.2f",
		bet.Bookmaker,
		marketmap.DisplaySport(sport),
		bet.Bet,
		strconv.FormatFloat(bet.Odds, 'g', -1, 64),
		rounded,
	)
	if status == Status2PC {
		line += " 2pc"
	}
	return line
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
