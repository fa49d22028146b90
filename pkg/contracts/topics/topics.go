package topics

const (
	// Ciclo de vida das apostas
	BetPlaced   = "bet_placed"
	BetResolved = "bet_resolved"
	BetPaid     = "bet_paid"
)
