package alias

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repo carrega e atualiza o cadastro de aliases no Postgres
// (tabelas vb_teams, vb_markets e vb_players).
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// LoadStore carrega o cadastro inteiro pra memória.
func (r *Repo) LoadStore(ctx context.Context) (*Store, error) {
	s := NewStore()

	rows, err := r.DB.QueryContext(ctx, `SELECT name, sport, aliases FROM vb_teams`)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.Name, &t.Sport, pq.Array(&t.Aliases)); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		s.Teams[t.Name] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	mrows, err := r.DB.QueryContext(ctx, `SELECT name, sport, aliases FROM vb_markets`)
	if err != nil {
		return nil, fmt.Errorf("load markets: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m Market
		if err := mrows.Scan(&m.Name, &m.Sport, pq.Array(&m.Aliases)); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		s.Markets[m.Name] = m
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("iterate markets: %w", err)
	}

	prows, err := r.DB.QueryContext(ctx, `SELECT name, sport, team, aliases FROM vb_players`)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p Player
		if err := prows.Scan(&p.Name, &p.Sport, &p.Team, pq.Array(&p.Aliases)); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		s.Players[p.Name] = p
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}

	return s, nil
}

// AddTeam insere ou atualiza um time e seus aliases.
func (r *Repo) AddTeam(ctx context.Context, name, sport string, aliases []string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vb_teams (name, sport, aliases)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET sport = EXCLUDED.sport, aliases = EXCLUDED.aliases
	`, name, sport, pq.Array(aliases))
	if err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

// AddTeamAlias acrescenta um alias a um time existente, sem duplicar.
func (r *Repo) AddTeamAlias(ctx context.Context, team, alias string) error {
	// no-op se o time não existir ou o alias já estiver cadastrado
	_, err := r.DB.ExecContext(ctx, `
		UPDATE vb_teams
		SET aliases = array_append(aliases, $2)
		WHERE name = $1 AND NOT ($2 = ANY (aliases))
	`, team, alias)
	if err != nil {
		return fmt.Errorf("append team alias: %w", err)
	}
	return nil
}

// AddMarket insere ou atualiza um mercado e seus aliases.
func (r *Repo) AddMarket(ctx context.Context, name, sport string, aliases []string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vb_markets (name, sport, aliases)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET sport = EXCLUDED.sport, aliases = EXCLUDED.aliases
	`, name, sport, pq.Array(aliases))
	if err != nil {
		return fmt.Errorf("upsert market: %w", err)
	}
	return nil
}

// AddPlayer insere ou atualiza um jogador.
func (r *Repo) AddPlayer(ctx context.Context, name, sport, team string, aliases []string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vb_players (name, sport, team, aliases)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET sport = EXCLUDED.sport, team = EXCLUDED.team, aliases = EXCLUDED.aliases
	`, name, sport, team, pq.Array(aliases))
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}
