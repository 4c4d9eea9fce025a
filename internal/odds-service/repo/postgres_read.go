package repo

import (
	"context"
	"database/sql"

	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/dto"
)

type ReadRepo struct {
	DB *sql.DB
}

func (r *ReadRepo) ListMarkets(ctx context.Context) ([]dto.Market, error) {
	const q = `
		SELECT market_id, MAX(market_name) AS market_name, MAX(event_name) AS event_name
		FROM lay_odds_current
		GROUP BY market_id
		ORDER BY market_id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dto.Market
	for rows.Next() {
		var m dto.Market
		if err := rows.Scan(&m.MarketID, &m.MarketName, &m.EventName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReadRepo) GetOddsByMarket(ctx context.Context, marketID string) ([]dto.LayOdds, error) {
	const q = `
		SELECT market_id, selection, lay_odds, lay_size, to_char(scraped_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM lay_odds_current
		WHERE market_id = $1
		ORDER BY selection;
	`
	rows, err := r.DB.QueryContext(ctx, q, marketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dto.LayOdds
	for rows.Next() {
		var o dto.LayOdds
		if err := rows.Scan(&o.MarketID, &o.Selection, &o.LayOdds, &o.LaySize, &o.ScrapedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
