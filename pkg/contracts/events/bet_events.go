package events

// Evento publicado no tópico "bet_placed" quando uma confirmação do agente
// vira aposta local.
type BetPlaced struct {
	BetID            string  `json:"bet_id"`
	Team             string  `json:"team"`
	Matchup          string  `json:"matchup"`
	Amount           float64 `json:"amount"`
	Profit           float64 `json:"profit"`
	TotalPayout      float64 `json:"total_payout"`
	BetTransactionID string  `json:"bet_transaction_id"`
	TsUnixMs         int64   `json:"ts_unix_ms"`
}

// Evento publicado no tópico "bet_resolved" quando a partida é simulada e a
// aposta entra em ready.
type BetResolved struct {
	BetID     string `json:"bet_id"`
	Matchup   string `json:"matchup"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Winner    string `json:"winner"` // "home" | "away"
	DidWin    bool   `json:"did_win"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}

// Evento publicado no tópico "bet_paid" após o payout externo ser confirmado.
type BetPaid struct {
	BetID               string  `json:"bet_id"`
	TotalPayout         float64 `json:"total_payout"`
	PayoutTransactionID string  `json:"payout_transaction_id"`
	TsUnixMs            int64   `json:"ts_unix_ms"`
}
