// Package store é o dono exclusivo das apostas da sessão e do cache de
// desfechos por matchup. Conduz cada aposta pela máquina de estados
//
//	pending --(delay de liquidação decorrido desde timestamp)--> ready
//	ready   --(payout externo bem-sucedido)--> paid
//
// e expõe a decisão de elegibilidade de payout. Consumidores observam
// snapshots; nenhum outro componente muta as apostas.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/sim"
)

// Erros de recusa local de payout: nenhum deles chega ao colaborador externo.
var (
	ErrBetNotFound    = errors.New("bet not found")
	ErrBetNotReady    = errors.New("bet is not ready for payout")
	ErrBetLost        = errors.New("bet did not win")
	ErrAlreadyPaid    = errors.New("bet already paid out")
	ErrPayoutInFlight = errors.New("payout already in progress")
	ErrClosed         = errors.New("store closed")
)

// PayoutExecutor é o colaborador externo que transfere o payout e devolve o
// id da transação.
type PayoutExecutor interface {
	ExecutePayout(ctx context.Context, bet model.Bet) (string, error)
}

// Store guarda as apostas de uma sessão em memória.
// Um único mutex protege apostas, cache de desfechos e timers; a simulação de
// um matchup acontece sob o lock, garantindo no máximo uma execução por
// matchup mesmo com dois timers disparando no mesmo tick.
type Store struct {
	log         *zap.Logger
	sim         *sim.Simulator
	payer       PayoutExecutor
	settleDelay time.Duration

	mu       sync.Mutex
	bets     map[string]*model.Bet
	order    []string
	outcomes map[string]model.GameOutcome
	timers   map[string]*time.Timer
	inflight map[string]bool
	closed   bool

	// Now permite injetar o relógio em testes.
	Now func() time.Time

	// Callbacks de transição (métricas, eventos Kafka, broadcast WS).
	// Sempre invocados fora do lock.
	OnPlaced   func(model.Bet)
	OnResolved func(model.Bet)
	OnPaid     func(model.Bet)
	OnChange   func([]model.Bet)
}

// New cria um Store vazio.
func New(log *zap.Logger, simulator *sim.Simulator, payer PayoutExecutor, settleDelay time.Duration) *Store {
	return &Store{
		log:         log,
		sim:         simulator,
		payer:       payer,
		settleDelay: settleDelay,
		bets:        make(map[string]*model.Bet),
		outcomes:    make(map[string]model.GameOutcome),
		timers:      make(map[string]*time.Timer),
		inflight:    make(map[string]bool),
		Now:         time.Now,
	}
}

// Place insere apostas recém-confirmadas e arma o timer de liquidação de cada
// uma. O tempo restante é medido a partir do Timestamp da aposta, não do
// momento em que o timer foi armado: uma aposta já vencida resolve de imediato.
func (s *Store) Place(bets ...model.Bet) {
	var placed []model.Bet

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	for i := range bets {
		b := bets[i]
		if _, exists := s.bets[b.ID]; exists {
			continue
		}
		s.bets[b.ID] = &b
		s.order = append(s.order, b.ID)

		remaining := s.settleDelay - s.Now().Sub(b.Timestamp)
		if remaining < 0 {
			remaining = 0
		}
		id := b.ID
		s.timers[id] = time.AfterFunc(remaining, func() { s.resolve(id) })
		placed = append(placed, b)
	}
	s.mu.Unlock()

	for _, b := range placed {
		s.log.Info("bet placed",
			zap.String("betId", b.ID),
			zap.String("team", b.Team),
			zap.String("matchup", b.Matchup),
			zap.Float64("amount", b.Amount),
		)
		if s.OnPlaced != nil {
			s.OnPlaced(b)
		}
	}
	if len(placed) > 0 {
		s.notifyChange()
	}
}

// resolve liquida uma aposta quando o delay expira: simula a partida (uma vez
// por matchup), calcula didWin e transiciona pending -> ready.
// Idempotente: um disparo tardio após a transição não tem efeito.
func (s *Store) resolve(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	b, ok := s.bets[id]
	if !ok || b.Status != model.StatusPending {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)

	// cache-check + simulate + store é um passo único sob o lock
	outcome, cached := s.outcomes[b.Matchup]
	if !cached {
		outcome = s.sim.Simulate(b.HomeOdds, b.AwayOdds)
		s.outcomes[b.Matchup] = outcome
	}

	// anexa desfecho e didWin a toda aposta do mesmo matchup que ainda não tem
	for _, otherID := range s.order {
		o := s.bets[otherID]
		if o.Matchup != b.Matchup || o.GameOutcome != nil {
			continue
		}
		oc := outcome
		win := didWin(*o, outcome)
		o.GameOutcome = &oc
		o.DidWin = &win
	}

	b.Status = model.StatusReady
	resolved := *b
	s.mu.Unlock()

	s.log.Info("bet resolved",
		zap.String("betId", resolved.ID),
		zap.String("matchup", resolved.Matchup),
		zap.Int("homeScore", outcome.HomeScore),
		zap.Int("awayScore", outcome.AwayScore),
		zap.Bool("didWin", *resolved.DidWin),
	)
	if s.OnResolved != nil {
		s.OnResolved(resolved)
	}
	s.notifyChange()
}

// didWin aplica a regra de vitória: o lado apostado corresponde ao vencedor.
func didWin(b model.Bet, out model.GameOutcome) bool {
	return (b.Team == b.HomeTeam && out.Winner == model.WinnerHome) ||
		(b.Team == b.AwayTeam && out.Winner == model.WinnerAway)
}

// Payout executa o pagamento de uma aposta vencedora.
// A elegibilidade é decidida localmente antes de qualquer chamada externa:
// a aposta precisa estar ready com didWin e sem payout em andamento. A chamada
// ao colaborador acontece fora do lock, então payouts e timers de outras
// apostas nunca ficam bloqueados. Falha externa não muta estado algum.
func (s *Store) Payout(ctx context.Context, id string) (model.Bet, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.Bet{}, ErrClosed
	}
	b, ok := s.bets[id]
	if !ok {
		s.mu.Unlock()
		return model.Bet{}, ErrBetNotFound
	}
	switch {
	case b.Status == model.StatusPaid:
		s.mu.Unlock()
		return model.Bet{}, ErrAlreadyPaid
	case b.Status != model.StatusReady:
		s.mu.Unlock()
		return model.Bet{}, ErrBetNotReady
	case b.DidWin == nil || !*b.DidWin:
		s.mu.Unlock()
		return model.Bet{}, ErrBetLost
	case s.inflight[id]:
		s.mu.Unlock()
		return model.Bet{}, ErrPayoutInFlight
	}
	s.inflight[id] = true
	snapshot := *b
	s.mu.Unlock()

	txID, err := s.payer.ExecutePayout(ctx, snapshot)

	s.mu.Lock()
	delete(s.inflight, id)
	if err != nil {
		s.mu.Unlock()
		return model.Bet{}, fmt.Errorf("execute payout: %w", err)
	}
	b.Status = model.StatusPaid
	b.PayoutTransactionID = txID
	paid := *b
	s.mu.Unlock()

	s.log.Info("bet paid out",
		zap.String("betId", paid.ID),
		zap.Float64("totalPayout", paid.TotalPayout),
		zap.String("payoutTransactionId", txID),
	)
	if s.OnPaid != nil {
		s.OnPaid(paid)
	}
	s.notifyChange()
	return paid, nil
}

// Get retorna uma cópia da aposta.
func (s *Store) Get(id string) (model.Bet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bets[id]
	if !ok {
		return model.Bet{}, false
	}
	return *b, true
}

// Snapshot retorna cópias de todas as apostas na ordem de inserção.
func (s *Store) Snapshot() []model.Bet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bet, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.bets[id])
	}
	return out
}

// Outcome retorna o desfecho cacheado de um matchup, se já simulado.
func (s *Store) Outcome(matchup string) (model.GameOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.outcomes[matchup]
	return out, ok
}

// Close cancela os timers pendentes e bloqueia novas mutações.
// Necessário no teardown da sessão para nenhum timer mutar aposta descartada.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) notifyChange() {
	if s.OnChange != nil {
		s.OnChange(s.Snapshot())
	}
}
