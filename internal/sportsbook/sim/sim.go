// Package sim gera desfechos de partidas a partir das odds moneyline.
// O resultado é aleatório mas com forma determinística: placares em faixas
// realistas de NFL e vencedor sorteado pela probabilidade implícita nas odds.
package sim

import (
	"math/rand"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/pkg/oddsmath"
)

// Simulator sorteia desfechos de partidas. A fonte de aleatoriedade é injetada
// para permitir testes com seed fixa; chamadas são independentes entre si.
type Simulator struct {
	rng *rand.Rand
}

// New cria um Simulator com a fonte de aleatoriedade informada.
func New(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// NewSeeded cria um Simulator a partir de uma seed.
func NewSeeded(seed int64) *Simulator {
	return New(rand.New(rand.NewSource(seed)))
}

// Simulate sorteia o desfecho de uma partida dadas as odds de cada lado.
// Nunca falha: odds degeneradas ainda produzem um desfecho plausível.
//
// Passos:
//  1. converte cada odd em probabilidade implícita;
//  2. normaliza para remover o vig (as duas probabilidades passam a somar 1);
//  3. um único sorteio uniforme decide o vencedor;
//  4. gera placares em faixas distintas para vencedor e perdedor;
//  5. força separação quando o placar do perdedor não ficou estritamente menor.
func (s *Simulator) Simulate(homeOdds, awayOdds int) model.GameOutcome {
	pHome := oddsmath.ImpliedProbability(homeOdds)
	pAway := oddsmath.ImpliedProbability(awayOdds)

	total := pHome + pAway
	normHome := 0.5
	if total > 0 {
		normHome = pHome / total
	}

	homeWins := s.rng.Float64() < normHome

	winnerScore := s.winnerScore()
	loserScore := s.loserScore()
	if loserScore >= winnerScore {
		// separa o placar somando 1 ou 2 touchdowns ao vencedor
		winnerScore = loserScore + (1+s.rng.Intn(2))*7
	}

	out := model.GameOutcome{Winner: model.WinnerAway, HomeScore: loserScore, AwayScore: winnerScore}
	if homeWins {
		out = model.GameOutcome{Winner: model.WinnerHome, HomeScore: winnerScore, AwayScore: loserScore}
	}
	return out
}

// winnerScore gera um placar na faixa alta: 2–5 TDs, 0–2 FGs e conversão de
// dois pontos ocasional.
func (s *Simulator) winnerScore() int {
	touchdowns := 2 + s.rng.Intn(4)
	fieldGoals := s.rng.Intn(3)
	extra := 0
	if s.rng.Float64() <= 0.3 {
		extra = 2
	}
	return touchdowns*7 + fieldGoals*3 + extra
}

// loserScore gera um placar na faixa baixa: 1–3 TDs e 0–2 FGs, sem bônus.
func (s *Simulator) loserScore() int {
	touchdowns := 1 + s.rng.Intn(3)
	fieldGoals := s.rng.Intn(3)
	return touchdowns*7 + fieldGoals*3
}
