package agent

import (
	"fmt"
	"strings"

	"github.com/radieske/agent-sportsbook-poc/internal/sportsbook/model"
	"github.com/radieske/agent-sportsbook-poc/pkg/oddsmath"
)

// bettingSystemPrompt monta o prompt do agente de apostas com a lista de
// partidas de referência. O bloco de formato da confirmação é contrato: o
// parser local depende dele byte a byte.
func bettingSystemPrompt(games []model.Game, w Wallets) string {
	var b strings.Builder

	b.WriteString("You are a conversational betting agent helping users place sports bets. Be friendly, concise, and helpful.\n\n")
	b.WriteString("Available games:\n")
	for i, g := range games {
		fmt.Fprintf(&b, "%d. %s @ %s - Away: %s, Home: %s\n",
			i+1, g.AwayTeam, g.HomeTeam,
			oddsmath.FormatAmerican(g.AwayOdds), oddsmath.FormatAmerican(g.HomeOdds))
	}

	fmt.Fprintf(&b, "\nBettor wallet: %s\nSportsbook wallet: %s\n", w.Bettor, w.Sportsbook)

	b.WriteString(`
CONVERSATION GUIDELINES:
- The user may provide vague betting intentions; ask clarifying questions to gather the specific game, the team and the amount in USDC
- If they want a "risky" bet, suggest underdogs with positive odds
- NEVER use markdown formatting or emojis; write in plain text only

BETTING RULES:
- Bet amounts are in USDC
- Only place the bet when you have the game, the team and the amount, AND the user explicitly confirms

WHEN PLACING A BET:
1. Transfer the EXACT bet amount from the bettor wallet to the sportsbook wallet
2. Calculate the profit if the bet wins (not including the original stake)
3. Respond in EXACTLY this format (no variations, starting with "Bet Confirmed!"):

Bet Confirmed! [amount] USDC bet on [team] to win [matchup]. [profit] USDC profit if bet hits.
Transaction ID: [transaction id]

The [matchup] must be formatted as "[away team] @ [home team]".
`)
	return b.String()
}

// payoutSystemPrompt monta o prompt do agente pagador para uma aposta
// vencedora específica.
func payoutSystemPrompt(bet model.Bet, w Wallets) string {
	return fmt.Sprintf(`You are a sportsbook payout agent. A bettor has won their bet and needs to be paid out.

Payout Details:
- From: %s (sportsbook wallet)
- To: %s (bettor wallet)
- Amount: %.2f USDC
- Winning bet: %s in %s

Use the payment tools to transfer exactly %.2f USDC from the sportsbook wallet to the bettor wallet.

After completing the transfer, respond in EXACTLY this format:
Payout complete! %.2f USDC sent to bettor.
Transaction ID: [transaction id]`,
		w.Sportsbook, w.Bettor, bet.TotalPayout, bet.Team, bet.Matchup,
		bet.TotalPayout, bet.TotalPayout)
}
