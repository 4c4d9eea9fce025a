package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const fixtureMarket = `<!DOCTYPE html>
<html><body>
<div class="market-view" data-market-id="1.234567890">
  <h1 class="market-view__name">MATCH_ODDS</h1>
  <div class="market-view__event">Arsenal v Chelsea</div>
  <table>
    <tr class="runner-line">
      <td class="runner-line__name">Arsenal</td>
      <td class="runner-line__lay"><span class="price">2.10</span> <span class="size">£1,540</span></td>
    </tr>
    <tr class="runner-line">
      <td class="runner-line__name">Chelsea</td>
      <td class="runner-line__lay"><span class="price">3.60</span> <span class="size">£820</span></td>
    </tr>
    <tr class="runner-line">
      <td class="runner-line__name">The Draw</td>
      <td class="runner-line__lay"><span class="price">3.45</span> <span class="size">£96</span></td>
    </tr>
  </table>
</div>
</body></html>`

func TestParseExtractsAllRunners(t *testing.T) {
	p := NewPageParser(DefaultSelectors())
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	recs, err := p.Parse(fixtureMarket, "exchange-simulator", now)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	first := recs[0]
	require.NotEmpty(t, first.RecordID)
	require.Equal(t, "1.234567890", first.MarketID)
	require.Equal(t, "MATCH_ODDS", first.MarketName)
	require.Equal(t, "Arsenal v Chelsea", first.EventName)
	require.Equal(t, "Arsenal", first.Selection)
	require.Equal(t, 2.10, first.LayOdds)
	require.Equal(t, 1540.0, first.LaySize)
	require.Equal(t, now, first.ScrapedAt)
	require.Equal(t, "exchange-simulator", first.Source)

	require.Equal(t, "Chelsea", recs[1].Selection)
	require.Equal(t, "The Draw", recs[2].Selection)
}

func TestParseIsDeterministic(t *testing.T) {
	p := NewPageParser(DefaultSelectors())
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	a, err := p.Parse(fixtureMarket, "betfair", now)
	require.NoError(t, err)
	b, err := p.Parse(fixtureMarket, "betfair", now)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		// RecordID é um uuid novo a cada execução; o resto é idêntico
		a[i].RecordID = ""
		b[i].RecordID = ""
		require.Equal(t, a[i], b[i])
	}
}

func TestParseFailsLoudOnBrokenPage(t *testing.T) {
	p := NewPageParser(DefaultSelectors())
	now := time.Now()

	cases := []struct {
		name    string
		markup  string
		wantErr error
	}{
		{
			name:    "sem container de mercado",
			markup:  `<html><body><p>manutenção</p></body></html>`,
			wantErr: ErrNoMarket,
		},
		{
			name: "sem market id",
			markup: `<div class="market-view">
				<h1 class="market-view__name">MATCH_ODDS</h1>
				<div class="market-view__event">A v B</div>
				<tr class="runner-line"></tr></div>`,
			wantErr: ErrNoMarketID,
		},
		{
			name: "sem runners",
			markup: `<div class="market-view" data-market-id="1.1">
				<h1 class="market-view__name">MATCH_ODDS</h1>
				<div class="market-view__event">A v B</div></div>`,
			wantErr: ErrNoSelections,
		},
		{
			name: "runner sem preço",
			markup: `<div class="market-view" data-market-id="1.1">
				<h1 class="market-view__name">MATCH_ODDS</h1>
				<div class="market-view__event">A v B</div>
				<table><tr class="runner-line">
					<td class="runner-line__name">A</td>
					<td class="runner-line__lay"></td>
				</tr></table></div>`,
			wantErr: ErrMissingField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := p.Parse(tc.markup, "x", now)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			require.Nil(t, recs) // nunca sai registro parcial
		})
	}
}

func TestParseAbortsOnFirstBadRunner(t *testing.T) {
	// segundo runner quebrado: nada é retornado, nem o primeiro (válido)
	markup := `<div class="market-view" data-market-id="1.1">
		<h1 class="market-view__name">MATCH_ODDS</h1>
		<div class="market-view__event">A v B</div>
		<table>
		<tr class="runner-line">
			<td class="runner-line__name">A</td>
			<td class="runner-line__lay"><span class="price">2.0</span></td>
		</tr>
		<tr class="runner-line">
			<td class="runner-line__name"></td>
			<td class="runner-line__lay"><span class="price">3.0</span></td>
		</tr>
		</table></div>`

	p := NewPageParser(DefaultSelectors())
	recs, err := p.Parse(markup, "x", time.Now())
	require.Error(t, err)
	require.Nil(t, recs)
}

func TestParseSize(t *testing.T) {
	for in, want := range map[string]float64{
		"£1,540":  1540,
		"£96":     96,
		"R$ 2.5":  2.5,
		"1234.56": 1234.56,
	} {
		got, err := parseSize(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := parseSize("--")
	require.Error(t, err)
}
