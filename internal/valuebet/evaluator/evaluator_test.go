package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/alias"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/betparse"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// fakeSource serve books em memória; LayPrice devolve o valor do book.
type fakeSource struct {
	books []MarketBook
}

func (f *fakeSource) CurrentBooks(_ context.Context) ([]MarketBook, error) {
	return f.books, nil
}

func (f *fakeSource) LayPrice(_ context.Context, marketID, selection string) (float64, error) {
	for _, b := range f.books {
		if b.MarketID != marketID {
			continue
		}
		for _, r := range b.Runners {
			if r.Selection == selection {
				return r.LayOdds, nil
			}
		}
	}
	return 0, context.Canceled
}

func evalStore() *alias.Store {
	s := alias.NewStore()
	s.Teams["Arsenal"] = alias.Team{Name: "Arsenal", Sport: "football"}
	s.Teams["Chelsea"] = alias.Team{Name: "Chelsea", Sport: "football"}
	s.Markets["match odds"] = alias.Market{Name: "match odds", Sport: "football"}
	s.Markets["correct score"] = alias.Market{Name: "correct score", Sport: "football"}
	return s
}

func newEvaluator(books []MarketBook) *Evaluator {
	store := evalStore()
	return &Evaluator{
		Log:    zap.NewNop(),
		Source: &fakeSource{books: books},
		Store:  store,
		Parser: betparse.NewParser(store, 80),
	}
}

func matchOddsBook() MarketBook {
	return MarketBook{
		MarketID:   "1.1",
		MarketName: "MATCH_ODDS",
		EventName:  "Arsenal v Chelsea",
		Runners: []Runner{
			{Selection: "Arsenal", LayOdds: 2.0},
			{Selection: "Chelsea", LayOdds: 3.6},
			{Selection: "The Draw", LayOdds: 3.4},
		},
	}
}

func TestEvaluateValue(t *testing.T) {
	e := newEvaluator([]MarketBook{matchOddsBook()})

	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b1",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal to win",
		Odds:      2.1,
	})
	require.NoError(t, err)
	require.Equal(t, StatusValue, ev.Status)
	require.Equal(t, 2.0, ev.LayProduct)
	require.Equal(t, []float64{2.0}, ev.LayPrices)
	require.Equal(t, "bet365 - Football - Arsenal to win - 2.1 / 2.00", ev.Line)
}

func TestEvaluateTwoPC(t *testing.T) {
	e := newEvaluator([]MarketBook{matchOddsBook()})

	// lay igual às odds fica dentro da margem de 2%
	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b2",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal to win",
		Odds:      2.0,
	})
	require.NoError(t, err)
	require.Equal(t, Status2PC, ev.Status)
	require.Equal(t, "bet365 - Football - Arsenal to win - 2 / 2.00 2pc", ev.Line)
}

func TestEvaluateNotValue(t *testing.T) {
	e := newEvaluator([]MarketBook{matchOddsBook()})

	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b3",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal to win",
		Odds:      1.5,
	})
	require.NoError(t, err)
	require.Equal(t, StatusNotValue, ev.Status)
	require.Empty(t, ev.Line)
}

func TestEvaluateUnparsed(t *testing.T) {
	e := newEvaluator([]MarketBook{matchOddsBook()})

	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b4",
		Bookmaker: "bet365",
		Bet:       "quantum flux capacitor",
		Odds:      2.0,
	})
	require.NoError(t, err)
	require.Equal(t, StatusUnparsed, ev.Status)
	require.NotEmpty(t, ev.Unrecognized)
}

func TestEvaluateNoEvent(t *testing.T) {
	e := newEvaluator(nil)

	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b5",
		Bookmaker: "bet365",
		Bet:       "Arsenal to win",
		Odds:      2.0,
	})
	require.NoError(t, err)
	require.Equal(t, StatusNoEvent, ev.Status)
}

func TestEvaluateSameMatchBothSides(t *testing.T) {
	e := newEvaluator([]MarketBook{matchOddsBook()})

	// os dois lados do mesmo confronto contam como uma perna só
	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b7",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal Chelsea win",
		Odds:      2.1,
	})
	require.NoError(t, err)
	require.Equal(t, StatusValue, ev.Status)
	require.Equal(t, []float64{2.0}, ev.LayPrices)
}

func TestEvaluateAbortsWhenLegHasNoPrice(t *testing.T) {
	store := evalStore()
	store.Teams["Porto"] = alias.Team{Name: "Porto", Sport: "football"}
	e := &Evaluator{
		Log:    zap.NewNop(),
		Source: &fakeSource{books: []MarketBook{matchOddsBook()}},
		Store:  store,
		Parser: betparse.NewParser(store, 80),
	}

	// acumulador com uma perna sem mercado raspado não pode virar veredito
	// calculado só sobre as pernas restantes
	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b8",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal Porto win",
		Odds:      4.2,
	})
	require.NoError(t, err)
	require.Equal(t, StatusNoPrice, ev.Status)
	require.Empty(t, ev.LayPrices)
	require.Zero(t, ev.LayProduct)
	require.Empty(t, ev.Line)
}

func TestEvaluateAbortsWhenLegHasNoEvent(t *testing.T) {
	store := evalStore()
	store.Teams["Porto"] = alias.Team{Name: "Porto", Sport: "football"}
	e := &Evaluator{
		Log:    zap.NewNop(),
		Source: &fakeSource{},
		Store:  store,
		Parser: betparse.NewParser(store, 80),
	}

	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b9",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal Porto win",
		Odds:      4.2,
	})
	require.NoError(t, err)
	require.Equal(t, StatusNoEvent, ev.Status)
	require.Empty(t, ev.LayPrices)
	require.Empty(t, ev.Line)
}

func TestMarketSuggestions(t *testing.T) {
	e := newEvaluator(nil)

	got := e.marketSuggestions([]string{"corect", "score"})
	require.NotEmpty(t, got)
	require.Equal(t, "correct score", got[0])

	require.Empty(t, e.marketSuggestions(nil))
}

func TestEvaluateCorrectScoreCombined(t *testing.T) {
	cs := MarketBook{
		MarketID:   "1.2",
		MarketName: "CORRECT_SCORE",
		EventName:  "Arsenal v Chelsea",
		Runners: []Runner{
			{Selection: "1 - 0", LayOdds: 8.0},
			{Selection: "2 - 0", LayOdds: 12.0},
			{Selection: "2 - 1", LayOdds: 10.0},
		},
	}
	e := newEvaluator([]MarketBook{matchOddsBook(), cs})

	// 1/(1/8 + 1/10) = 4.444..., arredondado pra cima: 4.5
	ev, err := e.Evaluate(context.Background(), events.BetSubmitted{
		BetID:     "b6",
		Bookmaker: "bet365",
		Sport:     "football",
		Bet:       "Arsenal v Chelsea correct score 1-0 2-1",
		Odds:      5.0,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{4.5}, ev.LayPrices)
	require.Equal(t, StatusValue, ev.Status)
}
