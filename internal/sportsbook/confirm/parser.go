// Package confirm extrai apostas estruturadas do texto livre devolvido pelo
// agente de apostas. O contrato textual esperado é:
//
//	Bet Confirmed! <amount> USDC bet on <team> to win <matchup>. <profit> USDC profit if bet hits.
//	Transaction ID: <id>
//
// Uma resposta pode conter múltiplas confirmações. Segmentos com campos
// faltando são descartados silenciosamente: política deliberada de melhor
// esforço, não uma validação — o agente às vezes responde texto conversacional
// sem aposta nenhuma. Cada descarte é logado e contado para reconciliação.
package confirm

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/odds"
)

// Marker é o prefixo literal que inicia cada confirmação de aposta.
const Marker = "Bet Confirmed!"

var (
	markerRe  = regexp.MustCompile(`(?i)bet confirmed!`)
	amountRe  = regexp.MustCompile(`^\s*([\d.]+)\s*USDC`)
	teamRe    = regexp.MustCompile(`USDC bet on (.+?) to win`)
	matchupRe = regexp.MustCompile(`to win (.+?)\.`)
	profitRe  = regexp.MustCompile(`([\d.]+)\s*USDC profit`)
	txIDRe    = regexp.MustCompile(`Transaction ID:\s*([a-zA-Z0-9-]+)`)
)

// Parser converte respostas do agente em apostas validadas, resolvendo as
// odds de cada matchup contra o board de referência.
type Parser struct {
	log   *zap.Logger
	board *odds.Board

	// Now permite injetar o relógio em testes.
	Now func() time.Time

	// OnDropped é chamado a cada segmento descartado (métricas).
	OnDropped func()
}

// New cria um Parser sobre o board de referência da sessão.
func New(log *zap.Logger, board *odds.Board) *Parser {
	return &Parser{log: log, board: board, Now: time.Now}
}

// ContainsConfirmation informa se a resposta contém ao menos um marcador de
// confirmação seguido de Transaction ID.
func ContainsConfirmation(response string) bool {
	return markerRe.MatchString(response) && txIDRe.MatchString(response)
}

// Parse extrai zero ou mais apostas da resposta do agente.
// A resposta é dividida nos marcadores de confirmação; cada segmento vira uma
// aposta somente se os cinco campos forem extraídos (tudo-ou-nada).
func (p *Parser) Parse(response string) []model.Bet {
	segments := markerRe.Split(response, -1)
	now := p.Now()

	var bets []model.Bet
	for i, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		bet, ok := p.parseSegment(seg, now, i)
		if !ok {
			// segmentos sem os cinco campos são descartados; o primeiro
			// segmento é o texto antes do marcador e cai sempre aqui
			if i > 0 {
				p.log.Warn("confirmation segment dropped",
					zap.Int("segment", i),
					zap.String("text", strings.TrimSpace(seg)),
				)
				if p.OnDropped != nil {
					p.OnDropped()
				}
			}
			continue
		}
		bets = append(bets, bet)
	}
	return bets
}

// parseSegment aplica os extratores de campo a um segmento normalizado.
// Todos os cinco campos precisam casar para produzir uma aposta.
func (p *Parser) parseSegment(seg string, now time.Time, ordinal int) (model.Bet, bool) {
	amount, ok := extractFloat(amountRe, seg)
	if !ok {
		return model.Bet{}, false
	}
	team, ok := extractString(teamRe, seg)
	if !ok {
		return model.Bet{}, false
	}
	matchup, ok := extractString(matchupRe, seg)
	if !ok {
		return model.Bet{}, false
	}
	profit, ok := extractFloat(profitRe, seg)
	if !ok {
		return model.Bet{}, false
	}
	txID, ok := extractString(txIDRe, seg)
	if !ok {
		return model.Bet{}, false
	}

	bet := model.Bet{
		ID:               "bet-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.Itoa(ordinal),
		Amount:           amount,
		Team:             team,
		Matchup:          matchup,
		Profit:           profit,
		TotalPayout:      amount + profit,
		BetTransactionID: txID,
		Status:           model.StatusPending,
		Timestamp:        now,
	}

	// decompõe o matchup canônico "<away> @ <home>"
	if away, home, found := strings.Cut(matchup, " @ "); found {
		bet.AwayTeam = away
		bet.HomeTeam = home
	}

	// odds vêm do board de referência; matchup desconhecido fica com 0
	if game, found := p.board.Find(matchup); found {
		bet.HomeOdds = game.HomeOdds
		bet.AwayOdds = game.AwayOdds
	}

	return bet, true
}

func extractString(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func extractFloat(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
