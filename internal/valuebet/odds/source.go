package odds

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	procache "github.com/vbetlab/valuebet-pipeline/internal/odds-processor/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/evaluator"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// Source lê os mercados correntes do Postgres e os lay prices do Redis, com
// fallback pro banco. Usa o mesmo formato de chave que o odds-processor grava.
type Source struct {
	DB  *sql.DB
	Rdb *redis.Client
}

func NewSource(db *sql.DB, rdb *redis.Client) *Source {
	return &Source{DB: db, Rdb: rdb}
}

// CurrentBooks carrega todos os mercados correntes, agrupando as seleções
// por mercado.
func (s *Source) CurrentBooks(ctx context.Context) ([]evaluator.MarketBook, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT market_id, market_name, event_name, selection, lay_odds
		FROM lay_odds_current
		ORDER BY market_id, selection
	`)
	if err != nil {
		return nil, fmt.Errorf("query current odds: %w", err)
	}
	defer rows.Close()

	var books []evaluator.MarketBook
	index := make(map[string]int)
	for rows.Next() {
		var marketID, marketName, eventName, selection string
		var lay float64
		if err := rows.Scan(&marketID, &marketName, &eventName, &selection, &lay); err != nil {
			return nil, fmt.Errorf("scan current odds: %w", err)
		}
		i, ok := index[marketID]
		if !ok {
			books = append(books, evaluator.MarketBook{
				MarketID:   marketID,
				MarketName: marketName,
				EventName:  eventName,
			})
			i = len(books) - 1
			index[marketID] = i
		}
		books[i].Runners = append(books[i].Runners, evaluator.Runner{Selection: selection, LayOdds: lay})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate current odds: %w", err)
	}
	return books, nil
}

// LayPrice devolve o lay mais fresco de uma seleção: cache Redis primeiro,
// banco como fallback quando a chave expirou.
func (s *Source) LayPrice(ctx context.Context, marketID, selection string) (float64, error) {
	raw, err := s.Rdb.Get(ctx, procache.Key(marketID, selection)).Bytes()
	if err == nil {
		var rec events.LayOddsRecord
		if jerr := json.Unmarshal(raw, &rec); jerr == nil && rec.LayOdds > 0 {
			return rec.LayOdds, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("redis get lay price: %w", err)
	}

	var lay float64
	err = s.DB.QueryRowContext(ctx, `
		SELECT lay_odds FROM lay_odds_current WHERE market_id = $1 AND selection = $2
	`, marketID, selection).Scan(&lay)
	if err != nil {
		return 0, fmt.Errorf("query lay price: %w", err)
	}
	return lay, nil
}
