package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/dto"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/repo"
	vbrepo "github.com/vbetlab/valuebet-pipeline/internal/valuebet/repo"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// API expõe os endpoints REST de consulta de lay odds e submissão de apostas
// Utiliza repositórios de leitura (Postgres), cache (Redis) e publica no Kafka
type API struct {
	Log      *zap.Logger
	ReadRepo *repo.ReadRepo    // mercados e odds correntes
	Bets     *vbrepo.Postgres  // apostas submetidas e avaliações
	Cache    *cache.Cache      // cache de odds por mercado
	Publ     interface {
		PublishBetSubmitted(context.Context, events.BetSubmitted) error
	}

	// Registry grava times/mercados/jogadores no cadastro de aliases lido
	// pelo valuebet-worker na subida. Apostas UNPARSED podem ser reenviadas
	// depois do cadastro.
	Registry interface {
		AddTeam(ctx context.Context, name, sport string, aliases []string) error
		AddTeamAlias(ctx context.Context, team, alias string) error
		AddMarket(ctx context.Context, name, sport string, aliases []string) error
		AddPlayer(ctx context.Context, name, sport, team string, aliases []string) error
	}
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/markets", a.listMarkets)          // Lista mercados correntes
	r.Get("/v1/markets/{id}/odds", a.getOdds)    // Lista lay odds de um mercado
	r.Post("/v1/bets", a.submitBet)              // Submete aposta pra avaliação
	r.Get("/v1/bets/{id}", a.getBetStatus)       // Estado de uma aposta
	r.Get("/v1/valuebets", a.listValuebets)      // Apostas avaliadas como VALUE/2PC

	// Manutenção do cadastro de aliases do avaliador
	r.Post("/v1/admin/teams", a.addTeam)
	r.Post("/v1/admin/teams/{name}/aliases", a.addTeamAlias)
	r.Post("/v1/admin/markets", a.addMarket)
	r.Post("/v1/admin/players", a.addPlayer)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listMarkets retorna todos os mercados correntes disponíveis
func (a *API) listMarkets(w http.ResponseWriter, r *http.Request) {
	mk, err := a.ReadRepo.ListMarkets(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mk)
}

// getOdds retorna as lay odds de um mercado, preferencialmente do cache
func (a *API) getOdds(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fromCache []dto.LayOdds
	if ok, _ := a.Cache.GetOdds(r.Context(), id, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	od, err := a.ReadRepo.GetOddsByMarket(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(od) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	_ = a.Cache.SetOdds(r.Context(), id, od, 30*time.Second) // salva no cache por 30s
	writeJSON(w, http.StatusOK, od)
}

// submitBet valida a aposta, persiste como SUBMITTED e publica pro avaliador
func (a *API) submitBet(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	bookmaker, sport, bet, odds := req.Bookmaker, req.Sport, req.Bet, req.Odds
	if req.Line != "" {
		var ok bool
		bookmaker, sport, bet, odds, ok = ParseBetLine(req.Line)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid bet line"})
			return
		}
	}
	if bookmaker == "" || bet == "" || odds <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	betID, err := a.Bets.CreateSubmitted(r.Context(), bookmaker, sport, bet, odds)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := a.Publ.PublishBetSubmitted(r.Context(), events.BetSubmitted{
		BetID:     betID,
		Bookmaker: bookmaker,
		Sport:     sport,
		Bet:       bet,
		Odds:      odds,
	}); err != nil {
		a.Log.Warn("publish bet submitted failed", zap.String("betId", betID), zap.Error(err))
	}

	writeJSON(w, http.StatusAccepted, dto.SubmitBetResponse{BetID: betID, Status: "SUBMITTED"})
}

// getBetStatus retorna o estado corrente de uma aposta submetida
func (a *API) getBetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := a.Bets.GetBet(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := dto.BetStatusResponse{
		BetID:     b.BetID,
		Bookmaker: b.Bookmaker,
		Sport:     b.Sport,
		Bet:       b.Bet,
		Odds:      b.Odds,
		Status:    b.Status,
		Line:      b.Line.String,
	}
	if b.LayProduct.Valid {
		resp.LayProduct = &b.LayProduct.Float64
	}
	writeJSON(w, http.StatusOK, resp)
}

// listValuebets retorna as apostas avaliadas como VALUE ou 2PC
func (a *API) listValuebets(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bets, err := a.Bets.ListValuebets(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	out := make([]dto.Valuebet, 0, len(bets))
	for _, b := range bets {
		vb := dto.Valuebet{
			BetID:      b.BetID,
			Status:     b.Status,
			Line:       b.Line.String,
			LayProduct: b.LayProduct.Float64,
		}
		if b.EvaluatedAt.Valid {
			vb.EvaluatedAt = b.EvaluatedAt.Time.UTC().Format(time.RFC3339)
		}
		out = append(out, vb)
	}
	writeJSON(w, http.StatusOK, out)
}

// addTeam cadastra um time e seus aliases
func (a *API) addTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := a.Registry.AddTeam(r.Context(), req.Name, req.Sport, req.Aliases); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// addTeamAlias acrescenta um alias a um time já cadastrado
func (a *API) addTeamAlias(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "name")

	var req dto.AddAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Alias) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := a.Registry.AddTeamAlias(r.Context(), team, req.Alias); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"team": team, "alias": req.Alias})
}

// addMarket cadastra um mercado e seus aliases
func (a *API) addMarket(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := a.Registry.AddMarket(r.Context(), req.Name, req.Sport, req.Aliases); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// addPlayer cadastra um jogador vinculado a um time
func (a *API) addPlayer(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := a.Registry.AddPlayer(r.Context(), req.Name, req.Sport, req.Team, req.Aliases); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// ParseBetLine decompõe "bookmaker - esporte - aposta - odds".
// Exige exatamente três separadores " - " e odds positiva.
func ParseBetLine(line string) (bookmaker, sport, bet string, odds float64, ok bool) {
	parts := strings.Split(line, " - ")
	if len(parts) != 4 {
		return "", "", "", 0, false
	}
	odds, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || odds <= 0 {
		return "", "", "", 0, false
	}
	bookmaker = strings.TrimSpace(parts[0])
	sport = strings.TrimSpace(parts[1])
	bet = strings.TrimSpace(parts[2])
	if bookmaker == "" || bet == "" {
		return "", "", "", 0, false
	}
	return bookmaker, sport, bet, odds, true
}
