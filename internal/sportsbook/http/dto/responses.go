package dto

import "github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"

// ChatResponse devolve o texto livre do agente e as apostas extraídas dele.
type ChatResponse struct {
	Success   bool        `json:"success"`
	Response  string      `json:"response"`
	BetPlaced bool        `json:"betPlaced"`
	Bets      []model.Bet `json:"bets,omitempty"`
}

// PayoutResponse confirma o pagamento de uma aposta vencedora.
type PayoutResponse struct {
	Success       bool      `json:"success"`
	BetID         string    `json:"betId"`
	TransactionID string    `json:"transactionId"`
	PayoutAmount  float64   `json:"payoutAmount"`
	Bet           model.Bet `json:"bet"`
}

// ErrorResponse é o envelope de erro da API.
type ErrorResponse struct {
	Error string `json:"error"`
}
