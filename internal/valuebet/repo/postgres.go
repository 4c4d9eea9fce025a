package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bet é uma aposta submetida e o resultado da avaliação dela.
type Bet struct {
	BetID       string
	Bookmaker   string
	Sport       string
	Bet         string
	Odds        float64
	Status      string
	LayProduct  sql.NullFloat64
	Line        sql.NullString
	SubmittedAt time.Time
	EvaluatedAt sql.NullTime
}

// Postgres persiste apostas submetidas e avaliações na tabela bets.
type Postgres struct {
	DB *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// CreateSubmitted grava a aposta com status SUBMITTED e devolve o id gerado.
func (p *Postgres) CreateSubmitted(ctx context.Context, bookmaker, sport, bet string, odds float64) (string, error) {
	id := uuid.NewString()
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO bets (bet_id, bookmaker, sport, bet, odds, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, 'SUBMITTED', NOW())
	`, id, bookmaker, sport, bet, odds)
	if err != nil {
		return "", fmt.Errorf("insert bet: %w", err)
	}
	return id, nil
}

// UpdateEvaluation grava o resultado da avaliação de uma aposta.
func (p *Postgres) UpdateEvaluation(ctx context.Context, betID, status string, layProduct float64, line string) error {
	res, err := p.DB.ExecContext(ctx, `
		UPDATE bets
		SET status = $2, lay_product = $3, line = NULLIF($4, ''), evaluated_at = NOW()
		WHERE bet_id = $1
	`, betID, status, layProduct, line)
	if err != nil {
		return fmt.Errorf("update evaluation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetBet busca uma aposta pelo id.
func (p *Postgres) GetBet(ctx context.Context, betID string) (Bet, error) {
	var b Bet
	err := p.DB.QueryRowContext(ctx, `
		SELECT bet_id, bookmaker, sport, bet, odds, status, lay_product, line, submitted_at, evaluated_at
		FROM bets WHERE bet_id = $1
	`, betID).Scan(&b.BetID, &b.Bookmaker, &b.Sport, &b.Bet, &b.Odds, &b.Status,
		&b.LayProduct, &b.Line, &b.SubmittedAt, &b.EvaluatedAt)
	if err != nil {
		return Bet{}, err
	}
	return b, nil
}

// ListValuebets lista as apostas avaliadas como VALUE ou 2PC, mais recentes primeiro.
func (p *Postgres) ListValuebets(ctx context.Context, limit int) ([]Bet, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.DB.QueryContext(ctx, `
		SELECT bet_id, bookmaker, sport, bet, odds, status, lay_product, line, submitted_at, evaluated_at
		FROM bets
		WHERE status IN ('VALUE', '2PC')
		ORDER BY evaluated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query valuebets: %w", err)
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.BetID, &b.Bookmaker, &b.Sport, &b.Bet, &b.Odds, &b.Status,
			&b.LayProduct, &b.Line, &b.SubmittedAt, &b.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("scan valuebet: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
