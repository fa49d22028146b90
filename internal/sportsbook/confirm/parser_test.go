package confirm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/confirm"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/odds"
)

func testBoard(t *testing.T) *odds.Board {
	t.Helper()
	return odds.NewBoard([]model.Game{
		{ID: "g1", HomeTeam: "Patriots", AwayTeam: "Jets", HomeOdds: 170, AwayOdds: -200},
		{ID: "g2", HomeTeam: "New York Giants", AwayTeam: "Green Bay Packers", HomeOdds: -150, AwayOdds: 130},
	})
}

func newParser(t *testing.T) *confirm.Parser {
	t.Helper()
	p := confirm.New(zaptest.NewLogger(t), testBoard(t))
	p.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return p
}

// Round-trip do contrato textual: uma confirmação bem formada vira uma aposta
// com exatamente os campos do texto e totalPayout = amount + profit.
func TestParseSingleConfirmation(t *testing.T) {
	p := newParser(t)

	resp := "Bet Confirmed! 5 USDC bet on Patriots to win Jets @ Patriots. 8.5 USDC profit if bet hits.\nTransaction ID: abc123"
	bets := p.Parse(resp)
	require.Len(t, bets, 1)

	b := bets[0]
	assert.Equal(t, 5.0, b.Amount)
	assert.Equal(t, "Patriots", b.Team)
	assert.Equal(t, "Jets @ Patriots", b.Matchup)
	assert.Equal(t, 8.5, b.Profit)
	assert.Equal(t, 13.5, b.TotalPayout)
	assert.Equal(t, "abc123", b.BetTransactionID)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, time.UnixMilli(1700000000000), b.Timestamp)

	// matchup decomposto e odds resolvidas no board
	assert.Equal(t, "Patriots", b.HomeTeam)
	assert.Equal(t, "Jets", b.AwayTeam)
	assert.Equal(t, 170, b.HomeOdds)
	assert.Equal(t, -200, b.AwayOdds)
	assert.Equal(t, 170, b.TeamOdds())

	// resolução só acontece depois
	assert.Nil(t, b.GameOutcome)
	assert.Nil(t, b.DidWin)
}

// O marcador é reconhecido sem diferenciar maiúsculas/minúsculas e pode vir
// depois de texto conversacional.
func TestParseCaseInsensitiveMarkerWithPreamble(t *testing.T) {
	p := newParser(t)

	resp := "Great choice! Placing it now.\n" +
		"bet confirmed! 2.5 USDC bet on New York Giants to win Green Bay Packers @ New York Giants. 1.67 USDC profit if bet hits.\n" +
		"Transaction ID: tx-9f8e7d"
	bets := p.Parse(resp)
	require.Len(t, bets, 1)
	assert.Equal(t, 2.5, bets[0].Amount)
	assert.Equal(t, "tx-9f8e7d", bets[0].BetTransactionID)
	assert.Equal(t, -150, bets[0].HomeOdds)
}

// Duas confirmações na mesma resposta viram duas apostas independentes,
// com ids distintos.
func TestParseMultipleConfirmations(t *testing.T) {
	p := newParser(t)

	resp := "Bet Confirmed! 5 USDC bet on Patriots to win Jets @ Patriots. 8.5 USDC profit if bet hits.\n" +
		"Transaction ID: aaa111\n" +
		"Bet Confirmed! 10 USDC bet on Green Bay Packers to win Green Bay Packers @ New York Giants. 13 USDC profit if bet hits.\n" +
		"Transaction ID: bbb222"
	bets := p.Parse(resp)
	require.Len(t, bets, 2)

	assert.Equal(t, "aaa111", bets[0].BetTransactionID)
	assert.Equal(t, "bbb222", bets[1].BetTransactionID)
	assert.NotEqual(t, bets[0].ID, bets[1].ID)
	assert.Equal(t, "Green Bay Packers", bets[1].Team)
	assert.Equal(t, 130, bets[1].TeamOdds())
}

// Segmento sem todos os cinco campos é descartado em silêncio; o restante da
// resposta ainda é aproveitado.
func TestParseDropsPartialSegment(t *testing.T) {
	p := newParser(t)
	dropped := 0
	p.OnDropped = func() { dropped++ }

	resp := "Bet Confirmed! 5 USDC bet on Patriots to win Jets @ Patriots. 8.5 USDC profit if bet hits.\n" +
		"Transaction ID: aaa111\n" +
		"Bet Confirmed! 10 USDC bet on Giants" // sem matchup, profit e tx id
	bets := p.Parse(resp)
	require.Len(t, bets, 1)
	assert.Equal(t, "aaa111", bets[0].BetTransactionID)
	assert.Equal(t, 1, dropped)
}

// Resposta puramente conversacional não produz apostas nem conta descarte.
func TestParseConversationalResponse(t *testing.T) {
	p := newParser(t)
	dropped := 0
	p.OnDropped = func() { dropped++ }

	bets := p.Parse("Which game would you like to bet on? We have Jets @ Patriots tonight.")
	assert.Empty(t, bets)
	assert.Zero(t, dropped)
}

// Matchup fora do board não falha: odds ficam em 0.
func TestParseUnknownMatchupDefaultsOdds(t *testing.T) {
	p := newParser(t)

	resp := "Bet Confirmed! 1 USDC bet on Bears to win Bears @ Lions. 2 USDC profit if bet hits.\nTransaction ID: ccc333"
	bets := p.Parse(resp)
	require.Len(t, bets, 1)
	assert.Equal(t, 0, bets[0].HomeOdds)
	assert.Equal(t, 0, bets[0].AwayOdds)
	assert.Equal(t, "Lions", bets[0].HomeTeam)
	assert.Equal(t, "Bears", bets[0].AwayTeam)
}

func TestContainsConfirmation(t *testing.T) {
	assert.True(t, confirm.ContainsConfirmation("Bet Confirmed! ...\nTransaction ID: x1"))
	assert.False(t, confirm.ContainsConfirmation("Bet Confirmed! but no id yet"))
	assert.False(t, confirm.ContainsConfirmation("hello"))
}
