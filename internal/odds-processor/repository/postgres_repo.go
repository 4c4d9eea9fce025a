package repository

import (
	"context"
	"database/sql"

	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// PostgresRepo implementa a persistência dos registros de lay odds.
// Duas tabelas: lay_odds_current (estado corrente por mercado+seleção)
// e lay_odds_history (append-only, um registro por scrape).
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertCurrent insere ou atualiza o lay corrente de uma seleção.
// ON CONFLICT na chave (market_id, selection) evita duplicidade.
func (r *PostgresRepo) UpsertCurrent(ctx context.Context, e events.LayOddsRecord) error {
	const q = `
		INSERT INTO lay_odds_current
		  (market_id, selection, market_name, event_name, lay_odds, lay_size, scraped_at, source)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (market_id, selection) DO UPDATE SET
		  market_name = EXCLUDED.market_name,
		  event_name  = EXCLUDED.event_name,
		  lay_odds    = EXCLUDED.lay_odds,
		  lay_size    = EXCLUDED.lay_size,
		  scraped_at  = EXCLUDED.scraped_at,
		  source      = EXCLUDED.source
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.MarketID, e.Selection, e.MarketName, e.EventName,
		e.LayOdds, e.LaySize, e.ScrapedAt, e.Source,
	)
	return err
}

// InsertHistory grava o registro imutável no histórico (lay_odds_history).
// A unicidade fica por (market_id, selection, scraped_at); o record_id é o uuid
// gerado no scrape.
func (r *PostgresRepo) InsertHistory(ctx context.Context, e events.LayOddsRecord) error {
	const q = `
		INSERT INTO lay_odds_history
		  (record_id, market_id, selection, lay_odds, lay_size, scraped_at, source)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (market_id, selection, scraped_at) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.RecordID, e.MarketID, e.Selection, e.LayOdds, e.LaySize, e.ScrapedAt, e.Source,
	)
	return err
}
