package model

import "time"

// Status representa o ciclo de vida de uma aposta.
// Transições monotônicas: pending -> ready -> paid (sem retorno).
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusPaid    Status = "paid"
)

// Winner identifica o lado vencedor de uma partida simulada.
type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
)

// Game é o dado de referência de uma partida com odds moneyline americanas.
// Carregado uma vez por sessão; imutável.
type Game struct {
	ID           string    `json:"id"`
	HomeTeam     string    `json:"homeTeam"`
	AwayTeam     string    `json:"awayTeam"`
	CommenceTime time.Time `json:"commenceTime"`
	HomeOdds     int       `json:"homeOdds"`
	AwayOdds     int       `json:"awayOdds"`
}

// Matchup retorna a string canônica "<away> @ <home>" que identifica a partida.
func (g Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// GameOutcome é o placar final simulado de uma partida.
// Invariante: os placares nunca empatam e Winner aponta o placar maior.
type GameOutcome struct {
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Winner    Winner `json:"winner"`
}

// Bet é uma aposta confirmada pelo agente externo e acompanhada localmente.
// GameOutcome e DidWin ficam ausentes até a resolução; uma vez atribuídos são
// imutáveis. PayoutTransactionID é gravado uma única vez, na transição para paid.
type Bet struct {
	ID                  string       `json:"id"`
	Amount              float64      `json:"amount"`
	Team                string       `json:"team"`
	Matchup             string       `json:"matchup"`
	Profit              float64      `json:"profit"`
	TotalPayout         float64      `json:"totalPayout"`
	BetTransactionID    string       `json:"betTransactionId"`
	Status              Status       `json:"status"`
	Timestamp           time.Time    `json:"timestamp"`
	PayoutTransactionID string       `json:"payoutTransactionId,omitempty"`
	HomeTeam            string       `json:"homeTeam"`
	AwayTeam            string       `json:"awayTeam"`
	HomeOdds            int          `json:"homeOdds"`
	AwayOdds            int          `json:"awayOdds"`
	GameOutcome         *GameOutcome `json:"gameOutcome,omitempty"`
	DidWin              *bool        `json:"didWin,omitempty"`
}

// TeamOdds retorna a odd tomada pelo apostador (lado escolhido).
func (b Bet) TeamOdds() int {
	if b.Team == b.HomeTeam {
		return b.HomeOdds
	}
	return b.AwayOdds
}
