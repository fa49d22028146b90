// Package http expõe a API REST/WS da sessão de apostas: conversa com o
// agente, consulta do board e das apostas e disparo de payout.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/agent"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/confirm"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/http/dto"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/odds"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/store"
)

// BetPlacer é o colaborador que conduz a conversa de aposta (agente externo).
type BetPlacer interface {
	PlaceBet(ctx context.Context, games []model.Game, messages []agent.Message) (string, error)
}

// Server liga a API HTTP ao parser, ao store e ao agente.
type Server struct {
	log    *zap.Logger
	board  *odds.Board
	store  *store.Store
	placer BetPlacer
	parser *confirm.Parser
	wsFn   http.HandlerFunc

	// OnAgentError conta falhas do colaborador externo (métricas).
	OnAgentError func()
}

// NewServer monta o servidor da API pública.
func NewServer(log *zap.Logger, board *odds.Board, st *store.Store, placer BetPlacer, parser *confirm.Parser, wsFn http.HandlerFunc) *Server {
	return &Server{log: log, board: board, store: st, placer: placer, parser: parser, wsFn: wsFn}
}

// Router retorna o roteador da API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/games", s.listGames)
	r.Post("/v1/chat", s.chat)
	r.Get("/v1/bets", s.listBets)
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/bets/{id}/payout", s.payout)
	if s.wsFn != nil {
		r.Get("/ws", s.wsFn)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listGames retorna o board de referência da sessão.
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Games())
}

// chat repassa a conversa ao agente, extrai confirmações da resposta e insere
// as apostas resultantes no store.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "no messages provided"})
		return
	}

	msgs := make([]agent.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = agent.Message{Role: m.Role, Content: m.Content}
	}

	response, err := s.placer.PlaceBet(r.Context(), s.board.Games(), msgs)
	if err != nil {
		// falha de colaborador externo: nada foi mutado, o usuário pode tentar de novo
		s.log.Error("agent call failed", zap.Error(err))
		if s.OnAgentError != nil {
			s.OnAgentError()
		}
		writeJSON(w, http.StatusBadGateway, dto.ErrorResponse{Error: "failed to process request, please try again"})
		return
	}

	bets := s.parser.Parse(response)
	if len(bets) > 0 {
		s.store.Place(bets...)
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{
		Success:   true,
		Response:  response,
		BetPlaced: confirm.ContainsConfirmation(response),
		Bets:      bets,
	})
}

// listBets retorna o snapshot de todas as apostas da sessão.
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// getBet retorna uma aposta pelo id.
func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := s.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "bet not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// payout dispara o pagamento de uma aposta vencedora. Recusas de elegibilidade
// são locais (409); só falha externa vira 502.
func (s *Server) payout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	paid, err := s.store.Payout(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.PayoutResponse{
			Success:       true,
			BetID:         paid.ID,
			TransactionID: paid.PayoutTransactionID,
			PayoutAmount:  paid.TotalPayout,
			Bet:           paid,
		})
	case errors.Is(err, store.ErrBetNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrBetNotReady),
		errors.Is(err, store.ErrBetLost),
		errors.Is(err, store.ErrAlreadyPaid),
		errors.Is(err, store.ErrPayoutInFlight):
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		s.log.Error("payout failed", zap.String("betId", id), zap.Error(err))
		if s.OnAgentError != nil {
			s.OnAgentError()
		}
		writeJSON(w, http.StatusBadGateway, dto.ErrorResponse{Error: "failed to process payout, please try again"})
	}
}
